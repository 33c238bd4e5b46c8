package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// DurationAdjustmentRepository 行程调整日志数据访问接口
type DurationAdjustmentRepository interface {
	Create(ctx context.Context, adj *model.DurationAdjustment) error
	// ListByAssignment 按插入顺序返回
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.DurationAdjustment, error)
	// Latest ID 最大的一条；无记录时返回 gorm.ErrRecordNotFound
	Latest(ctx context.Context, assignmentID int64) (*model.DurationAdjustment, error)
	// LatestUpTo 登记日不晚于 date 的派车各自的最新调整，按派车 ID 索引
	LatestUpTo(ctx context.Context, date dateutil.Date) (map[int64]model.DurationAdjustment, error)
	// ListByAssignments 批量取调整日志（按插入顺序），ID 列表分批查询
	ListByAssignments(ctx context.Context, assignmentIDs []int64) (map[int64][]model.DurationAdjustment, error)
	DeleteByAssignment(ctx context.Context, assignmentID int64) error
}

type durationAdjustmentRepo struct {
	db *gorm.DB
}

// NewDurationAdjustmentRepo 创建 DurationAdjustmentRepository 实例
func NewDurationAdjustmentRepo(db *gorm.DB) DurationAdjustmentRepository {
	return &durationAdjustmentRepo{db: db}
}

func (r *durationAdjustmentRepo) Create(ctx context.Context, adj *model.DurationAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *durationAdjustmentRepo) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.DurationAdjustment, error) {
	var list []model.DurationAdjustment
	err := r.db.WithContext(ctx).
		Where("route_assignment_id = ?", assignmentID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *durationAdjustmentRepo) Latest(ctx context.Context, assignmentID int64) (*model.DurationAdjustment, error) {
	var adj model.DurationAdjustment
	err := r.db.WithContext(ctx).
		Where("route_assignment_id = ?", assignmentID).
		Order("id DESC").
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *durationAdjustmentRepo) LatestUpTo(ctx context.Context, date dateutil.Date) (map[int64]model.DurationAdjustment, error) {
	latestIDs := r.db.Model(&model.DurationAdjustment{}).
		Select("MAX(duration_adjustments.id)").
		Joins("JOIN route_assignments ON route_assignments.id = duration_adjustments.route_assignment_id").
		Where("route_assignments.date <= ?", date).
		Group("duration_adjustments.route_assignment_id")

	var list []model.DurationAdjustment
	if err := r.db.WithContext(ctx).Where("id IN (?)", latestIDs).Find(&list).Error; err != nil {
		return nil, err
	}

	result := make(map[int64]model.DurationAdjustment, len(list))
	for _, adj := range list {
		result[adj.RouteAssignmentID] = adj
	}
	return result, nil
}

func (r *durationAdjustmentRepo) ListByAssignments(ctx context.Context, assignmentIDs []int64) (map[int64][]model.DurationAdjustment, error) {
	result := make(map[int64][]model.DurationAdjustment)
	for _, chunk := range chunkIDs(assignmentIDs, 0) {
		var list []model.DurationAdjustment
		err := r.db.WithContext(ctx).
			Where("route_assignment_id IN ?", chunk).
			Order("id ASC").
			Find(&list).Error
		if err != nil {
			return nil, err
		}
		for _, adj := range list {
			result[adj.RouteAssignmentID] = append(result[adj.RouteAssignmentID], adj)
		}
	}
	return result, nil
}

func (r *durationAdjustmentRepo) DeleteByAssignment(ctx context.Context, assignmentID int64) error {
	return r.db.WithContext(ctx).
		Where("route_assignment_id = ?", assignmentID).
		Delete(&model.DurationAdjustment{}).Error
}
