package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// VacationHandler 假期模块 Handler
type VacationHandler struct {
	svc service.VacationService
}

// NewVacationHandler 创建 VacationHandler 实例
func NewVacationHandler(svc service.VacationService) *VacationHandler {
	return &VacationHandler{svc: svc}
}

// Create 新增假期
// POST /api/v1/vacations
func (h *VacationHandler) Create(c *gin.Context) {
	var req dto.SaveVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeVacation, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeVacation, err)
		return
	}
	response.Created(c, resp)
}

// List 假期列表
// GET /api/v1/vacations?collaborator_id=
func (h *VacationHandler) List(c *gin.Context) {
	var req dto.VacationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeVacation, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeVacation, err)
		return
	}
	response.OK(c, list)
}

// Update 编辑假期
// PUT /api/v1/vacations/:id
func (h *VacationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeVacation)
	if !ok {
		return
	}
	var req dto.SaveVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeVacation, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeVacation, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除假期
// DELETE /api/v1/vacations/:id
func (h *VacationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeVacation)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeVacation, err)
		return
	}
	response.OK(c, nil)
}

// ImportICS 从 ICS 日历导入假期
// POST /api/v1/vacations/import
//
// 支持两种方式：
//   - 文件上传: multipart/form-data, field="file", collaborator_id
//   - URL 导入: application/json, body={"collaborator_id": 1, "url": "..."}
func (h *VacationHandler) ImportICS(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil && bodyTooLarge(err) {
		response.PayloadTooLarge(c)
		return
	}
	if err == nil {
		defer file.Close()
		collaboratorID, err := strconv.ParseInt(c.PostForm("collaborator_id"), 10, 64)
		if err != nil || collaboratorID <= 0 {
			response.BadRequest(c, codeVacation, "缺少 collaborator_id")
			return
		}
		resp, err := h.svc.ImportICS(c.Request.Context(), collaboratorID, file)
		if err != nil {
			handleServiceError(c, codeVacation, err)
			return
		}
		response.Created(c, resp)
		return
	}

	var req dto.ImportVacationsRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, codeVacation, err)
		return
	}
	if req.URL == "" {
		response.BadRequest(c, codeVacation, "请上传 ICS 文件或提供 ICS URL")
		return
	}

	body, err := service.FetchICSContent(req.URL)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, codeVacation+2, "ICS URL 获取失败", err.Error())
		return
	}
	defer body.Close()

	resp, err := h.svc.ImportICS(c.Request.Context(), req.CollaboratorID, body)
	if err != nil {
		handleServiceError(c, codeVacation, err)
		return
	}
	response.Created(c, resp)
}
