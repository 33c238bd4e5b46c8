package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// WeeklyRouteHandler 每周模板与屏蔽线路 Handler
type WeeklyRouteHandler struct {
	svc service.WeeklyRouteService
}

// NewWeeklyRouteHandler 创建 WeeklyRouteHandler 实例
func NewWeeklyRouteHandler(svc service.WeeklyRouteService) *WeeklyRouteHandler {
	return &WeeklyRouteHandler{svc: svc}
}

// Create 新增模板
// POST /api/v1/weekly-routes
func (h *WeeklyRouteHandler) Create(c *gin.Context) {
	var req dto.CreateWeeklyRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWeeklyRoute, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.Created(c, resp)
}

// List 模板列表
// GET /api/v1/weekly-routes?weekday=
func (h *WeeklyRouteHandler) List(c *gin.Context) {
	var req dto.WeeklyRouteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeWeeklyRoute, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, list)
}

// Update 更新模板
// PUT /api/v1/weekly-routes/:id
func (h *WeeklyRouteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeWeeklyRoute)
	if !ok {
		return
	}
	var req dto.UpdateWeeklyRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWeeklyRoute, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除模板
// DELETE /api/v1/weekly-routes/:id
func (h *WeeklyRouteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeWeeklyRoute)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, nil)
}

// Pending 当日待生成的模板
// GET /api/v1/weekly-routes/pending?date=
func (h *WeeklyRouteHandler) Pending(c *gin.Context) {
	date, ok := parseDate(c, codeWeeklyRoute, c.Query("date"))
	if !ok {
		return
	}

	list, err := h.svc.Pending(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, list)
}

// Materialize 按模板生成当日派车
// POST /api/v1/weekly-routes/materialize
func (h *WeeklyRouteHandler) Materialize(c *gin.Context) {
	var req dto.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWeeklyRoute, err)
		return
	}

	resp, err := h.svc.Materialize(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, resp)
}

// Suppress 屏蔽某日线路
// POST /api/v1/suppressed-routes
func (h *WeeklyRouteHandler) Suppress(c *gin.Context) {
	var req dto.SuppressRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWeeklyRoute, err)
		return
	}

	if err := h.svc.Suppress(c.Request.Context(), &req); err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.Created(c, nil)
}

// ClearSuppressed 清除某日全部屏蔽
// DELETE /api/v1/suppressed-routes?date=
func (h *WeeklyRouteHandler) ClearSuppressed(c *gin.Context) {
	date, ok := parseDate(c, codeWeeklyRoute, c.Query("date"))
	if !ok {
		return
	}

	resp, err := h.svc.ClearSuppressed(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeWeeklyRoute, err)
		return
	}
	response.OK(c, resp)
}
