package model

import (
	"time"

	"jr-escala/backend/pkg/dateutil"
)

// WeeklyRoute 每周固定线路模板 — 对应 weekly_routes
// Weekday: 1=周一 … 7=周日
type WeeklyRoute struct {
	ID          int64  `gorm:"primaryKey"                 json:"id"`
	Weekday     int    `gorm:"not null;index"             json:"weekday"`
	RouteNumber string `gorm:"type:varchar(20);not null"  json:"route_number"`
	Destination string `gorm:"type:varchar(120);not null" json:"destination"`
	Note        string `gorm:"type:text"                  json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (WeeklyRoute) TableName() string { return "weekly_routes" }

// Label 线路标签
func (w *WeeklyRoute) Label() string { return ComposeLabel(w.RouteNumber, w.Destination) }

// SuppressedRoute 当日被手动移除的线路，自动生成时跳过 — 对应 suppressed_routes
type SuppressedRoute struct {
	ID          int64         `gorm:"primaryKey"                                          json:"id"`
	Date        dateutil.Date `gorm:"type:date;not null;uniqueIndex:uq_suppressed_routes" json:"date"`
	RouteNumber string        `gorm:"type:varchar(20);not null;uniqueIndex:uq_suppressed_routes"  json:"route_number"`
	Destination string        `gorm:"type:varchar(120);not null;uniqueIndex:uq_suppressed_routes" json:"destination"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"created_at"`
}

// TableName 指定表名
func (SuppressedRoute) TableName() string { return "suppressed_routes" }

// Label 线路标签
func (s *SuppressedRoute) Label() string { return ComposeLabel(s.RouteNumber, s.Destination) }
