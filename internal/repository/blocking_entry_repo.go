package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// BlockingEntryFilter 封锁列表过滤条件
type BlockingEntryFilter struct {
	CollaboratorID *int64
	StandaloneOnly bool
}

// BlockingEntryRepository 封锁区间数据访问接口
type BlockingEntryRepository interface {
	CreateBatch(ctx context.Context, entries []model.BlockingEntry) error
	GetByID(ctx context.Context, id int64) (*model.BlockingEntry, error)
	List(ctx context.Context, filter BlockingEntryFilter) ([]model.BlockingEntry, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.BlockingEntry, error)
	// ListStandaloneCovering 不属于任何派车且 start <= date < end 的封锁
	ListStandaloneCovering(ctx context.Context, date dateutil.Date) ([]model.BlockingEntry, error)
	UpdateEndByAssignment(ctx context.Context, assignmentID int64, end dateutil.Date) (int64, error)
	DeleteByAssignment(ctx context.Context, assignmentID int64) (int64, error)
	DeleteByCollaborator(ctx context.Context, collaboratorID int64) error
	Delete(ctx context.Context, id int64) error
	// DeleteExpired 删除 end <= today 的封锁，返回删除条数
	DeleteExpired(ctx context.Context, today dateutil.Date) (int64, error)
}

type blockingEntryRepo struct {
	db *gorm.DB
}

// NewBlockingEntryRepo 创建 BlockingEntryRepository 实例
func NewBlockingEntryRepo(db *gorm.DB) BlockingEntryRepository {
	return &blockingEntryRepo{db: db}
}

func (r *blockingEntryRepo) CreateBatch(ctx context.Context, entries []model.BlockingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *blockingEntryRepo) GetByID(ctx context.Context, id int64) (*model.BlockingEntry, error) {
	var b model.BlockingEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blockingEntryRepo) List(ctx context.Context, filter BlockingEntryFilter) ([]model.BlockingEntry, error) {
	var list []model.BlockingEntry
	db := r.db.WithContext(ctx)
	if filter.CollaboratorID != nil {
		db = db.Where("collaborator_id = ?", *filter.CollaboratorID)
	}
	if filter.StandaloneOnly {
		db = db.Where("route_assignment_id IS NULL")
	}
	err := db.Order("start_date DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *blockingEntryRepo) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.BlockingEntry, error) {
	var list []model.BlockingEntry
	err := r.db.WithContext(ctx).
		Where("route_assignment_id = ?", assignmentID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *blockingEntryRepo) ListStandaloneCovering(ctx context.Context, date dateutil.Date) ([]model.BlockingEntry, error) {
	var list []model.BlockingEntry
	err := r.db.WithContext(ctx).
		Where("route_assignment_id IS NULL").
		Where("start_date <= ? AND end_date > ?", date, date).
		Find(&list).Error
	return list, err
}

func (r *blockingEntryRepo) UpdateEndByAssignment(ctx context.Context, assignmentID int64, end dateutil.Date) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.BlockingEntry{}).
		Where("route_assignment_id = ?", assignmentID).
		Update("end_date", end)
	return res.RowsAffected, res.Error
}

func (r *blockingEntryRepo) DeleteByAssignment(ctx context.Context, assignmentID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("route_assignment_id = ?", assignmentID).
		Delete(&model.BlockingEntry{})
	return res.RowsAffected, res.Error
}

func (r *blockingEntryRepo) DeleteByCollaborator(ctx context.Context, collaboratorID int64) error {
	return r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Delete(&model.BlockingEntry{}).Error
}

func (r *blockingEntryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlockingEntry{}).Error
}

func (r *blockingEntryRepo) DeleteExpired(ctx context.Context, today dateutil.Date) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("end_date <= ?", today).
		Delete(&model.BlockingEntry{})
	return res.RowsAffected, res.Error
}
