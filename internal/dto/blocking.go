package dto

import "jr-escala/backend/pkg/dateutil"

// ── 封锁台账 DTO ──

// CreateBlockingEntryRequest 新增独立封锁 [start_date, end_date)
type CreateBlockingEntryRequest struct {
	CollaboratorID int64         `json:"collaborator_id" binding:"required,min=1"`
	StartDate      dateutil.Date `json:"start_date"`
	EndDate        dateutil.Date `json:"end_date"`
	Reason         string        `json:"reason"          binding:"omitempty,max=120"`
}

// BlockingEntryListRequest 封锁列表查询参数
type BlockingEntryListRequest struct {
	CollaboratorID *int64 `form:"collaborator_id" binding:"omitempty,min=1"`
	StandaloneOnly bool   `form:"standalone_only"`
}

// BlockingEntryResponse 封锁信息
type BlockingEntryResponse struct {
	ID                int64  `json:"id"`
	CollaboratorID    int64  `json:"collaborator_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Reason            string `json:"reason,omitempty"`
	RouteAssignmentID *int64 `json:"route_assignment_id,omitempty"`
}

// PurgeExpiredResponse 过期封锁清理结果
type PurgeExpiredResponse struct {
	Today   string `json:"today"`
	Deleted int64  `json:"deleted"`
}
