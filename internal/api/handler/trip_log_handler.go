package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// TripLogHandler 行程日志 Handler
type TripLogHandler struct {
	svc service.TripLogService
}

// NewTripLogHandler 创建 TripLogHandler 实例
func NewTripLogHandler(svc service.TripLogService) *TripLogHandler {
	return &TripLogHandler{svc: svc}
}

// Query 行程日志
// GET /api/v1/trip-log?from=&to=&driver_id=&plate=&status=
func (h *TripLogHandler) Query(c *gin.Context) {
	var req dto.TripLogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeTripLog, err)
		return
	}

	list, err := h.svc.Query(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeTripLog, err)
		return
	}
	response.OK(c, list)
}
