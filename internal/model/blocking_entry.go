package model

import (
	"time"

	"jr-escala/backend/pkg/dateutil"
)

// BlockingEntry 人员封锁区间 — 对应 blocking_entries
// 区间为 [StartDate, EndDate)；RouteAssignmentID 为空表示手工录入的独立封锁
type BlockingEntry struct {
	ID                int64         `gorm:"primaryKey"                         json:"id"`
	CollaboratorID    int64         `gorm:"not null;index"                     json:"collaborator_id"`
	StartDate         dateutil.Date `gorm:"type:date;not null"                 json:"start_date"`
	EndDate           dateutil.Date `gorm:"type:date;not null"                 json:"end_date"`
	Reason            string        `gorm:"type:varchar(120)"                  json:"reason,omitempty"`
	RouteAssignmentID *int64        `gorm:"index"                              json:"route_assignment_id,omitempty"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (BlockingEntry) TableName() string { return "blocking_entries" }

// Standalone 是否为独立封锁（不属于任何派车）
func (b *BlockingEntry) Standalone() bool { return b.RouteAssignmentID == nil }

// Covers 目标日是否落在 [StartDate, EndDate)
func (b *BlockingEntry) Covers(d dateutil.Date) bool {
	return d.WithinHalfOpen(b.StartDate, b.EndDate)
}
