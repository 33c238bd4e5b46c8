package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// DayOffRepository 休息日数据访问接口
type DayOffRepository interface {
	Create(ctx context.Context, d *model.DayOff) error
	GetByID(ctx context.Context, id int64) (*model.DayOff, error)
	// ListByDate date 为零值时返回全部
	ListByDate(ctx context.Context, date dateutil.Date) ([]model.DayOff, error)
	Update(ctx context.Context, d *model.DayOff) error
	Delete(ctx context.Context, id int64) error
	DeleteByCollaborator(ctx context.Context, collaboratorID int64) error
}

type dayOffRepo struct {
	db *gorm.DB
}

// NewDayOffRepo 创建 DayOffRepository 实例
func NewDayOffRepo(db *gorm.DB) DayOffRepository {
	return &dayOffRepo{db: db}
}

func (r *dayOffRepo) Create(ctx context.Context, d *model.DayOff) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dayOffRepo) GetByID(ctx context.Context, id int64) (*model.DayOff, error) {
	var d model.DayOff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dayOffRepo) ListByDate(ctx context.Context, date dateutil.Date) ([]model.DayOff, error) {
	var list []model.DayOff
	db := r.db.WithContext(ctx)
	if date.Valid() {
		db = db.Where("date = ?", date)
	}
	err := db.Order("date DESC, id ASC").Find(&list).Error
	return list, err
}

func (r *dayOffRepo) Update(ctx context.Context, d *model.DayOff) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *dayOffRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DayOff{}).Error
}

func (r *dayOffRepo) DeleteByCollaborator(ctx context.Context, collaboratorID int64) error {
	return r.db.WithContext(ctx).Where("collaborator_id = ?", collaboratorID).Delete(&model.DayOff{}).Error
}
