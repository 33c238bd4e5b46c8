package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/dateutil"
	"jr-escala/backend/pkg/response"
)

// DayOffHandler 休息日模块 Handler
type DayOffHandler struct {
	svc service.DayOffService
}

// NewDayOffHandler 创建 DayOffHandler 实例
func NewDayOffHandler(svc service.DayOffService) *DayOffHandler {
	return &DayOffHandler{svc: svc}
}

// Create 新增休息日
// POST /api/v1/days-off
func (h *DayOffHandler) Create(c *gin.Context) {
	var req dto.SaveDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeDayOff, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeDayOff, err)
		return
	}
	response.Created(c, resp)
}

// ListByDate 休息日列表，未指定日期时返回全部
// GET /api/v1/days-off[?date=]
func (h *DayOffHandler) ListByDate(c *gin.Context) {
	var date dateutil.Date
	if raw := c.Query("date"); raw != "" {
		d, ok := parseDate(c, codeDayOff, raw)
		if !ok {
			return
		}
		date = d
	}

	list, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeDayOff, err)
		return
	}
	response.OK(c, list)
}

// Update 编辑休息日
// PUT /api/v1/days-off/:id
func (h *DayOffHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeDayOff)
	if !ok {
		return
	}
	var req dto.SaveDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeDayOff, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeDayOff, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除休息日
// DELETE /api/v1/days-off/:id
func (h *DayOffHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeDayOff)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeDayOff, err)
		return
	}
	response.OK(c, nil)
}
