package model

import "time"

// DurationAdjustment 行程天数调整日志 — 对应 duration_adjustments
// 最新一条（ID 最大）的 NewDays 即当前有效天数；负数表示行程已取消
type DurationAdjustment struct {
	ID                int64     `gorm:"primaryKey"                         json:"id"`
	RouteAssignmentID int64     `gorm:"not null;index"                     json:"route_assignment_id"`
	AdjustedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"adjusted_at"`
	PreviousDays      int       `gorm:"not null"                           json:"previous_days"`
	NewDays           int       `gorm:"not null"                           json:"new_days"`
	Note              string    `gorm:"type:text"                          json:"note,omitempty"`
}

// TableName 指定表名
func (DurationAdjustment) TableName() string { return "duration_adjustments" }
