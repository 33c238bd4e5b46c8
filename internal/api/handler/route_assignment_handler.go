package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// RouteAssignmentHandler 派车与行程天数 Handler
type RouteAssignmentHandler struct {
	svc      service.RouteAssignmentService
	duration service.DurationService
}

// NewRouteAssignmentHandler 创建 RouteAssignmentHandler 实例
func NewRouteAssignmentHandler(svc service.RouteAssignmentService, duration service.DurationService) *RouteAssignmentHandler {
	return &RouteAssignmentHandler{svc: svc, duration: duration}
}

// Create 新增派车
// POST /api/v1/route-assignments
func (h *RouteAssignmentHandler) Create(c *gin.Context) {
	var req dto.SaveRouteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeRouteAssignment, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.Created(c, resp)
}

// ListByDate 当日派车
// GET /api/v1/route-assignments?date=
func (h *RouteAssignmentHandler) ListByDate(c *gin.Context) {
	date, ok := parseDate(c, codeRouteAssignment, c.Query("date"))
	if !ok {
		return
	}

	list, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, list)
}

// Get 派车详情
// GET /api/v1/route-assignments/:id
func (h *RouteAssignmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, resp)
}

// Update 编辑派车（整体替换）
// PUT /api/v1/route-assignments/:id
func (h *RouteAssignmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}
	var req dto.SaveRouteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeRouteAssignment, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除派车
// DELETE /api/v1/route-assignments/:id
func (h *RouteAssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, nil)
}

// Duplicate 同日复制
// POST /api/v1/route-assignments/:id/duplicate
func (h *RouteAssignmentHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	resp, err := h.svc.Duplicate(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.Created(c, resp)
}

// ── 行程天数 ──

// GetDuration 当前有效天数
// GET /api/v1/route-assignments/:id/duration
func (h *RouteAssignmentHandler) GetDuration(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	resp, err := h.duration.GetDuration(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, resp)
}

// ListAdjustments 调整日志
// GET /api/v1/route-assignments/:id/adjustments
func (h *RouteAssignmentHandler) ListAdjustments(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	resp, err := h.duration.ListAdjustments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.OK(c, resp)
}

// RegisterAdjustment 登记天数调整
// POST /api/v1/route-assignments/:id/adjustments
func (h *RouteAssignmentHandler) RegisterAdjustment(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}
	var req dto.RegisterAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeRouteAssignment, err)
		return
	}

	resp, err := h.duration.RegisterAdjustment(c.Request.Context(), id, *req.NewDays, req.Note)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.Created(c, resp)
}

// Release 立即释放人员
// POST /api/v1/route-assignments/:id/release
func (h *RouteAssignmentHandler) Release(c *gin.Context) {
	id, ok := parseID(c, codeRouteAssignment)
	if !ok {
		return
	}

	resp, err := h.duration.ReleaseNow(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeRouteAssignment, err)
		return
	}
	response.Created(c, resp)
}
