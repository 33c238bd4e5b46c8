package dto

import "jr-escala/backend/pkg/dateutil"

// ── 假期 ──

// SaveVacationRequest 新增 / 编辑假期
type SaveVacationRequest struct {
	CollaboratorID int64         `json:"collaborator_id" binding:"required,min=1"`
	StartDate      dateutil.Date `json:"start_date"`
	EndDate        dateutil.Date `json:"end_date"`
	Note           string        `json:"note"            binding:"omitempty,max=500"`
}

// VacationListRequest 假期列表查询参数
type VacationListRequest struct {
	CollaboratorID *int64 `form:"collaborator_id" binding:"omitempty,min=1"`
}

// VacationResponse 假期信息
type VacationResponse struct {
	ID             int64  `json:"id"`
	CollaboratorID int64  `json:"collaborator_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Note           string `json:"note,omitempty"`
}

// ImportVacationsRequest 通过 URL 导入 ICS 假期
type ImportVacationsRequest struct {
	CollaboratorID int64  `json:"collaborator_id" form:"collaborator_id" binding:"required,min=1"`
	URL            string `json:"url"             form:"url"`
}

// ImportVacationsResponse ICS 导入结果
type ImportVacationsResponse struct {
	Imported  int                `json:"imported"`
	Skipped   int                `json:"skipped"`
	Vacations []VacationResponse `json:"vacations"`
}

// ── 休息日 ──

// SaveDayOffRequest 新增 / 编辑休息日
type SaveDayOffRequest struct {
	Date           dateutil.Date `json:"date"`
	CollaboratorID int64         `json:"collaborator_id" binding:"required,min=1"`
	EndDate        dateutil.Date `json:"end_date"`
	DepartureDate  dateutil.Date `json:"departure_date"`
	Note           string        `json:"note"            binding:"omitempty,max=500"`
}

// DayOffResponse 休息日信息
type DayOffResponse struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	CollaboratorID int64   `json:"collaborator_id"`
	EndDate        *string `json:"end_date,omitempty"`
	DepartureDate  *string `json:"departure_date,omitempty"`
	Note           string  `json:"note,omitempty"`
}

// ── 车辆进厂 ──

// SaveWorkshopVisitRequest 新增 / 编辑进厂记录
type SaveWorkshopVisitRequest struct {
	Date          dateutil.Date `json:"date"`
	TruckPlate    string        `json:"truck_plate"    binding:"required,max=16"`
	DriverID      *int64        `json:"driver_id"      binding:"omitempty,min=1"`
	DepartureDate dateutil.Date `json:"departure_date"`
	Note          string        `json:"note"           binding:"omitempty,max=500"`
}

// WorkshopVisitResponse 进厂记录信息
type WorkshopVisitResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	TruckPlate    string  `json:"truck_plate"`
	DriverID      *int64  `json:"driver_id,omitempty"`
	DepartureDate *string `json:"departure_date,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// ── 配送中心值班 ──

// SaveCDDutyRequest 新增 / 编辑值班
type SaveCDDutyRequest struct {
	Date     dateutil.Date `json:"date"`
	DriverID *int64        `json:"driver_id" binding:"omitempty,min=1"`
	HelperID *int64        `json:"helper_id" binding:"omitempty,min=1"`
	Note     string        `json:"note"      binding:"omitempty,max=500"`
}

// CDDutyResponse 值班信息
type CDDutyResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	DriverID *int64 `json:"driver_id,omitempty"`
	HelperID *int64 `json:"helper_id,omitempty"`
	Note     string `json:"note,omitempty"`
}
