package dto

// ── 行程日志 DTO ──

// 行程状态
const (
	TripStatusInProgress = "in_progress"
	TripStatusFinished   = "finished"
)

// TripLogRequest 行程日志查询参数
type TripLogRequest struct {
	From     string `form:"from"`
	To       string `form:"to"`
	DriverID *int64 `form:"driver_id" binding:"omitempty,min=1"`
	Plate    string `form:"plate"     binding:"omitempty,max=16"`
	Status   string `form:"status"    binding:"omitempty,oneof=all in_progress finished"`
}

// TripLogEntry 单条行程
type TripLogEntry struct {
	RouteAssignmentID int64                `json:"route_assignment_id"`
	Date              string               `json:"date"`
	DepartureDate     string               `json:"departure_date"`
	EndDate           string               `json:"end_date"`
	Label             string               `json:"label"`
	TruckPlate        *string              `json:"truck_plate,omitempty"`
	DriverID          *int64               `json:"driver_id,omitempty"`
	DriverName        string               `json:"driver_name,omitempty"`
	HelperID          *int64               `json:"helper_id,omitempty"`
	HelperName        string               `json:"helper_name,omitempty"`
	Category          string               `json:"category"`
	PlannedDays       int                  `json:"planned_days"`
	EffectiveDays     int                  `json:"effective_days"`
	Status            string               `json:"status"`
	RemainingDays     int                  `json:"remaining_days"`
	Summary           string               `json:"summary"`
	Empty             bool                 `json:"empty"`
	Adjustments       []AdjustmentResponse `json:"adjustments"`
}
