package model

import "jr-escala/backend/pkg/dateutil"

// Vacation 假期表 — 对应 vacations，闭区间 [StartDate, EndDate]
type Vacation struct {
	ID             int64         `gorm:"primaryKey"         json:"id"`
	CollaboratorID int64         `gorm:"not null;index"     json:"collaborator_id"`
	StartDate      dateutil.Date `gorm:"type:date;not null" json:"start_date"`
	EndDate        dateutil.Date `gorm:"type:date;not null" json:"end_date"`
	Note           string        `gorm:"type:text"          json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Vacation) TableName() string { return "vacations" }

// Covers 目标日是否在假期内
func (v *Vacation) Covers(d dateutil.Date) bool {
	return d.Within(v.StartDate, v.EndDate)
}

// DayOff 休息日表 — 对应 days_off，仅 Date 当天生效
// EndDate / DepartureDate 为界面附带信息，不参与占用计算
type DayOff struct {
	ID             int64         `gorm:"primaryKey"                                   json:"id"`
	Date           dateutil.Date `gorm:"type:date;not null;uniqueIndex:uq_days_off"   json:"date"`
	CollaboratorID int64         `gorm:"not null;uniqueIndex:uq_days_off"             json:"collaborator_id"`
	EndDate        dateutil.Date `gorm:"type:date"                                    json:"end_date"`
	DepartureDate  dateutil.Date `gorm:"type:date"                                    json:"departure_date"`
	Note           string        `gorm:"type:text"                                    json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (DayOff) TableName() string { return "days_off" }

// WorkshopVisit 车辆进厂表 — 对应 workshop_visits
// 当天车辆不可用，随车司机在两个角色中均不可用
type WorkshopVisit struct {
	ID            int64         `gorm:"primaryKey"                                       json:"id"`
	Date          dateutil.Date `gorm:"type:date;not null;uniqueIndex:uq_workshop_visits" json:"date"`
	TruckPlate    string        `gorm:"type:varchar(16);not null;uniqueIndex:uq_workshop_visits" json:"truck_plate"`
	DriverID      *int64        `gorm:""                                                 json:"driver_id,omitempty"`
	DepartureDate dateutil.Date `gorm:"type:date"                                        json:"departure_date"`
	Note          string        `gorm:"type:text"                                        json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (WorkshopVisit) TableName() string { return "workshop_visits" }

// CDDuty 配送中心值班表 — 对应 cd_duties
type CDDuty struct {
	ID       int64         `gorm:"primaryKey"              json:"id"`
	Date     dateutil.Date `gorm:"type:date;not null;index" json:"date"`
	DriverID *int64        `gorm:""                        json:"driver_id,omitempty"`
	HelperID *int64        `gorm:""                        json:"helper_id,omitempty"`
	Note     string        `gorm:"type:text"               json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CDDuty) TableName() string { return "cd_duties" }
