package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// BlockingHandler 封锁台账 Handler
// 派车封锁由派车接口维护，这里只写独立封锁
type BlockingHandler struct {
	svc service.BlockingService
}

// NewBlockingHandler 创建 BlockingHandler 实例
func NewBlockingHandler(svc service.BlockingService) *BlockingHandler {
	return &BlockingHandler{svc: svc}
}

// List 封锁列表
// GET /api/v1/blocking-entries?collaborator_id=&standalone_only=
func (h *BlockingHandler) List(c *gin.Context) {
	var req dto.BlockingEntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeBlocking, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeBlocking, err)
		return
	}
	response.OK(c, list)
}

// Create 新增独立封锁
// POST /api/v1/blocking-entries
func (h *BlockingHandler) Create(c *gin.Context) {
	var req dto.CreateBlockingEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeBlocking, err)
		return
	}

	resp, err := h.svc.CreateStandalone(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeBlocking, err)
		return
	}
	response.Created(c, resp)
}

// Delete 删除独立封锁
// DELETE /api/v1/blocking-entries/:id
func (h *BlockingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeBlocking)
	if !ok {
		return
	}

	if err := h.svc.DeleteStandalone(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeBlocking, err)
		return
	}
	response.OK(c, nil)
}

// PurgeExpired 清理过期封锁
// POST /api/v1/blocking-entries/purge-expired
func (h *BlockingHandler) PurgeExpired(c *gin.Context) {
	resp, err := h.svc.PurgeExpired(c.Request.Context())
	if err != nil {
		handleServiceError(c, codeBlocking, err)
		return
	}
	response.OK(c, resp)
}
