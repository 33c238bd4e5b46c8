package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// CollaboratorHandler 人员模块 Handler
type CollaboratorHandler struct {
	svc service.CollaboratorService
}

// NewCollaboratorHandler 创建 CollaboratorHandler 实例
func NewCollaboratorHandler(svc service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{svc: svc}
}

// Create 新增人员
// POST /api/v1/collaborators
func (h *CollaboratorHandler) Create(c *gin.Context) {
	var req dto.CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeCollaborator, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.Created(c, resp)
}

// List 人员列表
// GET /api/v1/collaborators?role=&active_only=
func (h *CollaboratorHandler) List(c *gin.Context) {
	var req dto.CollaboratorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeCollaborator, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, list)
}

// ListAvailable 指定日期可用人员
// GET /api/v1/collaborators/available?role=&date=&ignore_kind=&ignore_id=
func (h *CollaboratorHandler) ListAvailable(c *gin.Context) {
	var req dto.AvailableCollaboratorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeCollaborator, err)
		return
	}
	date, ok := parseDate(c, codeCollaborator, req.Date)
	if !ok {
		return
	}
	ignore, ok := parseIgnore(c, codeCollaborator, req.IgnoreQuery)
	if !ok {
		return
	}

	list, err := h.svc.ListAvailable(c.Request.Context(), req.Role, date, ignore)
	if err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, list)
}

// Get 人员详情
// GET /api/v1/collaborators/:id
func (h *CollaboratorHandler) Get(c *gin.Context) {
	id, ok := parseID(c, codeCollaborator)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, resp)
}

// Update 更新人员
// PUT /api/v1/collaborators/:id
func (h *CollaboratorHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeCollaborator)
	if !ok {
		return
	}
	var req dto.UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeCollaborator, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, resp)
}

// Deactivate 停用人员
// PUT /api/v1/collaborators/:id/deactivate
func (h *CollaboratorHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, codeCollaborator)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, nil)
}

// Delete 删除人员（级联）
// DELETE /api/v1/collaborators/:id
func (h *CollaboratorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeCollaborator)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeCollaborator, err)
		return
	}
	response.OK(c, nil)
}
