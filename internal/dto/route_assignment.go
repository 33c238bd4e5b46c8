package dto

import "jr-escala/backend/pkg/dateutil"

// ── 派车模块 DTO ──

// SaveRouteAssignmentRequest 新增 / 编辑派车请求（编辑为整体替换）
type SaveRouteAssignmentRequest struct {
	Date          dateutil.Date `json:"date"`
	DepartureDate dateutil.Date `json:"departure_date"`
	RouteNumber   string        `json:"route_number" binding:"max=20"`
	Destination   string        `json:"destination"  binding:"required,max=120"`
	TruckPlate    *string       `json:"truck_plate"  binding:"omitempty,max=16"`
	DriverID      *int64        `json:"driver_id"    binding:"omitempty,min=1"`
	HelperID      *int64        `json:"helper_id"    binding:"omitempty,min=1"`
	Category      string        `json:"category"     binding:"omitempty,oneof=none day_trip two_days three_days four_days five_days"`
	Note          string        `json:"note"         binding:"omitempty,max=500"`
}

// RouteAssignmentResponse 派车信息响应
type RouteAssignmentResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	DepartureDate string  `json:"departure_date"`
	Label         string  `json:"label"`
	RouteNumber   string  `json:"route_number"`
	Destination   string  `json:"destination"`
	TruckPlate    *string `json:"truck_plate,omitempty"`
	DriverID      *int64  `json:"driver_id,omitempty"`
	HelperID      *int64  `json:"helper_id,omitempty"`
	Category      string  `json:"category"`
	PlannedDays   int     `json:"planned_days"`
	Note          string  `json:"note,omitempty"`
	Reviewed      bool    `json:"reviewed"`
}

// ── 行程天数调整 ──

// RegisterAdjustmentRequest 登记行程天数调整
type RegisterAdjustmentRequest struct {
	NewDays *int   `json:"new_days" binding:"required,min=-1,max=60"`
	Note    string `json:"note"     binding:"omitempty,max=500"`
}

// DurationResponse 当前有效天数
type DurationResponse struct {
	RouteAssignmentID int64 `json:"route_assignment_id"`
	PlannedDays       int   `json:"planned_days"`
	EffectiveDays     int   `json:"effective_days"`
	Adjusted          bool  `json:"adjusted"`
}

// AdjustmentResponse 单条调整记录
type AdjustmentResponse struct {
	ID           int64  `json:"id"`
	AdjustedAt   string `json:"adjusted_at"`
	PreviousDays int    `json:"previous_days"`
	NewDays      int    `json:"new_days"`
	Note         string `json:"note,omitempty"`
}

// AdjustmentListResponse 调整日志与摘要
type AdjustmentListResponse struct {
	RouteAssignmentID int64                `json:"route_assignment_id"`
	Summary           string               `json:"summary"`
	Adjustments       []AdjustmentResponse `json:"adjustments"`
}
