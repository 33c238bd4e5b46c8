package model

import (
	"strings"

	"jr-escala/backend/pkg/dateutil"
)

// RouteAssignment 线路派车表 — 对应 route_assignments
//   - Date 登记日；DepartureDate 缺失或早于登记日时按默认规则推算
//   - 线路标签由 RouteNumber 与 Destination 派生，见 Label
type RouteAssignment struct {
	ID            int64         `gorm:"primaryKey"                                json:"id"`
	Date          dateutil.Date `gorm:"type:date;not null"                        json:"date"`
	DepartureDate dateutil.Date `gorm:"type:date"                                 json:"departure_date"`
	RouteNumber   string        `gorm:"type:varchar(20);not null"                 json:"route_number"`
	Destination   string        `gorm:"type:varchar(120);not null"                json:"destination"`
	TruckPlate    *string       `gorm:"type:varchar(16)"                          json:"truck_plate,omitempty"`
	DriverID      *int64        `gorm:""                                          json:"driver_id,omitempty"`
	HelperID      *int64        `gorm:""                                          json:"helper_id,omitempty"`
	Category      RouteCategory `gorm:"type:varchar(20);not null;default:'none'" json:"category"`
	Note          string        `gorm:"type:text"                                 json:"note,omitempty"`
	Reviewed      bool          `gorm:"not null;default:false"                    json:"reviewed"`
	BaseModel
}

// TableName 指定表名
func (RouteAssignment) TableName() string { return "route_assignments" }

// Label 线路显示标签 "编号 - 目的地"
func (r *RouteAssignment) Label() string {
	return ComposeLabel(r.RouteNumber, r.Destination)
}

// EffectiveDeparture 实际出发日（缺失或早于登记日时取默认出发日）
func (r *RouteAssignment) EffectiveDeparture() dateutil.Date {
	return dateutil.ResolveDeparture(r.Date, r.DepartureDate)
}

// CrewIDs 已指派的人员 ID（司机在前）
func (r *RouteAssignment) CrewIDs() []int64 {
	ids := make([]int64, 0, 2)
	if r.DriverID != nil {
		ids = append(ids, *r.DriverID)
	}
	if r.HelperID != nil {
		ids = append(ids, *r.HelperID)
	}
	return ids
}

// ComposeLabel 组合线路标签
func ComposeLabel(number, destination string) string {
	number = strings.TrimSpace(number)
	destination = strings.TrimSpace(destination)
	switch {
	case number == "":
		return destination
	case destination == "":
		return number
	}
	return number + " - " + destination
}

// SplitLabel 拆分 "编号 - 目的地" 形式的旧标签；无分隔符时整体视为目的地
func SplitLabel(label string) (number, destination string) {
	label = strings.TrimSpace(label)
	if i := strings.Index(label, " - "); i >= 0 {
		return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i+3:])
	}
	return "", label
}
