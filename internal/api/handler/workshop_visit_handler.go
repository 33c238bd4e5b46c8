package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// WorkshopVisitHandler 进厂记录模块 Handler
type WorkshopVisitHandler struct {
	svc service.WorkshopVisitService
}

// NewWorkshopVisitHandler 创建 WorkshopVisitHandler 实例
func NewWorkshopVisitHandler(svc service.WorkshopVisitService) *WorkshopVisitHandler {
	return &WorkshopVisitHandler{svc: svc}
}

// Create 新增进厂记录
// POST /api/v1/workshop-visits
func (h *WorkshopVisitHandler) Create(c *gin.Context) {
	var req dto.SaveWorkshopVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWorkshopVisit, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeWorkshopVisit, err)
		return
	}
	response.Created(c, resp)
}

// ListByDate 当日进厂记录
// GET /api/v1/workshop-visits?date=
func (h *WorkshopVisitHandler) ListByDate(c *gin.Context) {
	date, ok := parseDate(c, codeWorkshopVisit, c.Query("date"))
	if !ok {
		return
	}

	list, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeWorkshopVisit, err)
		return
	}
	response.OK(c, list)
}

// Update 编辑进厂记录
// PUT /api/v1/workshop-visits/:id
func (h *WorkshopVisitHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeWorkshopVisit)
	if !ok {
		return
	}
	var req dto.SaveWorkshopVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeWorkshopVisit, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeWorkshopVisit, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除进厂记录
// DELETE /api/v1/workshop-visits/:id
func (h *WorkshopVisitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeWorkshopVisit)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeWorkshopVisit, err)
		return
	}
	response.OK(c, nil)
}
