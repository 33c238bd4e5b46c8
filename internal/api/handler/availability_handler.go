package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// AvailabilityHandler 占用查询 Handler
type AvailabilityHandler struct {
	svc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler 实例
func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// Check 指定日期不可用的司机 / 助手 / 车辆
// GET /api/v1/availability?date=&ignore_kind=&ignore_id=
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeAvailability, err)
		return
	}
	date, ok := parseDate(c, codeAvailability, req.Date)
	if !ok {
		return
	}
	ignore, ok := parseIgnore(c, codeAvailability, req.IgnoreQuery)
	if !ok {
		return
	}

	u, err := h.svc.Check(c.Request.Context(), date, ignore)
	if err != nil {
		handleServiceError(c, codeAvailability, err)
		return
	}
	response.OK(c, dto.AvailabilityResponse{
		Date:    date.String(),
		Drivers: u.Drivers(),
		Helpers: u.Helpers(),
		Trucks:  u.Trucks(),
	})
}
