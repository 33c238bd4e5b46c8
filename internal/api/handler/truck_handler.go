package handler

import (
	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/response"
)

// TruckHandler 车辆模块 Handler
type TruckHandler struct {
	svc service.TruckService
}

// NewTruckHandler 创建 TruckHandler 实例
func NewTruckHandler(svc service.TruckService) *TruckHandler {
	return &TruckHandler{svc: svc}
}

// Create 新增车辆
// POST /api/v1/trucks
func (h *TruckHandler) Create(c *gin.Context) {
	var req dto.CreateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeTruck, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.Created(c, resp)
}

// List 车辆列表
// GET /api/v1/trucks?active_only=
func (h *TruckHandler) List(c *gin.Context) {
	var req dto.TruckListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeTruck, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, list)
}

// ListAvailable 指定日期可用车辆
// GET /api/v1/trucks/available?date=&ignore_kind=&ignore_id=
func (h *TruckHandler) ListAvailable(c *gin.Context) {
	var req dto.AvailableTrucksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeTruck, err)
		return
	}
	date, ok := parseDate(c, codeTruck, req.Date)
	if !ok {
		return
	}
	ignore, ok := parseIgnore(c, codeTruck, req.IgnoreQuery)
	if !ok {
		return
	}

	list, err := h.svc.ListAvailable(c.Request.Context(), date, ignore)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, list)
}

// InMaintenance 车辆当天是否进厂
// GET /api/v1/trucks/maintenance?plate=&date=
func (h *TruckHandler) InMaintenance(c *gin.Context) {
	var req dto.MaintenanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, codeTruck, err)
		return
	}
	date, ok := parseDate(c, codeTruck, req.Date)
	if !ok {
		return
	}

	resp, err := h.svc.InMaintenance(c.Request.Context(), req.Plate, date)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, resp)
}

// Get 车辆详情
// GET /api/v1/trucks/:id
func (h *TruckHandler) Get(c *gin.Context) {
	id, ok := parseID(c, codeTruck)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, resp)
}

// Update 更新车辆
// PUT /api/v1/trucks/:id
func (h *TruckHandler) Update(c *gin.Context) {
	id, ok := parseID(c, codeTruck)
	if !ok {
		return
	}
	var req dto.UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, codeTruck, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除车辆
// DELETE /api/v1/trucks/:id
func (h *TruckHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, codeTruck)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, codeTruck, err)
		return
	}
	response.OK(c, nil)
}
