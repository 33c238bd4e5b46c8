package dto

// ── 车辆模块 DTO ──

// CreateTruckRequest 新增车辆请求
type CreateTruckRequest struct {
	Plate string `json:"plate" binding:"required,max=16"`
	Model string `json:"model" binding:"omitempty,max=80"`
	Note  string `json:"note"  binding:"omitempty,max=500"`
}

// UpdateTruckRequest 更新车辆请求
type UpdateTruckRequest struct {
	Plate  *string `json:"plate"  binding:"omitempty,min=1,max=16"`
	Model  *string `json:"model"  binding:"omitempty,max=80"`
	Note   *string `json:"note"   binding:"omitempty,max=500"`
	Active *bool   `json:"active"`
}

// TruckListRequest 车辆列表查询参数
type TruckListRequest struct {
	ActiveOnly bool `form:"active_only"`
}

// AvailableTrucksRequest 可用车辆查询参数
type AvailableTrucksRequest struct {
	Date string `form:"date" binding:"required"`
	IgnoreQuery
}

// MaintenanceRequest 进厂查询参数
type MaintenanceRequest struct {
	Plate string `form:"plate" binding:"required,max=16"`
	Date  string `form:"date"  binding:"required"`
}

// MaintenanceResponse 车辆当日是否进厂
type MaintenanceResponse struct {
	Plate           string `json:"plate"`
	Date            string `json:"date"`
	InMaintenance   bool   `json:"in_maintenance"`
	WorkshopVisitID *int64 `json:"workshop_visit_id,omitempty"`
}

// TruckResponse 车辆信息响应
type TruckResponse struct {
	ID     int64  `json:"id"`
	Plate  string `json:"plate"`
	Model  string `json:"model,omitempty"`
	Note   string `json:"note,omitempty"`
	Active bool   `json:"active"`
}
