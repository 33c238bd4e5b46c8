package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// CDDutyHandler 值班模块 Handler
type CDDutyHandler struct {
	svc service.CDDutyService
}

// NewCDDutyHandler 创建 CDDutyHandler 实例
func NewCDDutyHandler(svc service.CDDutyService) *CDDutyHandler {
	return &CDDutyHandler{svc: svc}
}

// Create 新增值班
// POST /api/v1/cd-duties
func (h *CDDutyHandler) Create(c *gin.Context) {
	var req dto.SaveCDDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeCDDuty, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeCDDuty, err)
		return
	}
	response.Created(c, resp)
}

// ListByDate 当日值班
// GET /api/v1/cd-duties?date=
func (h *CDDutyHandler) ListByDate(c *gin.Context) {
	date, ok := parseDate(c, codeCDDuty, c.Query("date"))
	if !ok {
		return
	}

	list, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, codeCDDuty, err)
		return
	}
	response.OK(c, list)
}

// Update 编辑值班
// PUT /api/v1/cd-duties/:id
func (h *CDDutyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeCDDuty)
	if !ok {
		return
	}
	var req dto.SaveCDDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeCDDuty, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeCDDuty, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除值班
// DELETE /api/v1/cd-duties/:id
func (h *CDDutyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeCDDuty)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeCDDuty, err)
		return
	}
	response.OK(c, nil)
}
