package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// CDDutyRepository 配送中心值班数据访问接口
type CDDutyRepository interface {
	Create(ctx context.Context, d *model.CDDuty) error
	GetByID(ctx context.Context, id int64) (*model.CDDuty, error)
	// ListByDate date 为零值时返回全部
	ListByDate(ctx context.Context, date dateutil.Date) ([]model.CDDuty, error)
	Update(ctx context.Context, d *model.CDDuty) error
	Delete(ctx context.Context, id int64) error
	ClearCollaborator(ctx context.Context, collaboratorID int64) error
}

type cdDutyRepo struct {
	db *gorm.DB
}

// NewCDDutyRepo 创建 CDDutyRepository 实例
func NewCDDutyRepo(db *gorm.DB) CDDutyRepository {
	return &cdDutyRepo{db: db}
}

func (r *cdDutyRepo) Create(ctx context.Context, d *model.CDDuty) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *cdDutyRepo) GetByID(ctx context.Context, id int64) (*model.CDDuty, error) {
	var d model.CDDuty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *cdDutyRepo) ListByDate(ctx context.Context, date dateutil.Date) ([]model.CDDuty, error) {
	var list []model.CDDuty
	db := r.db.WithContext(ctx)
	if date.Valid() {
		db = db.Where("date = ?", date)
	}
	err := db.Order("date DESC, id ASC").Find(&list).Error
	return list, err
}

func (r *cdDutyRepo) Update(ctx context.Context, d *model.CDDuty) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *cdDutyRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CDDuty{}).Error
}

func (r *cdDutyRepo) ClearCollaborator(ctx context.Context, collaboratorID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.CDDuty{}).
		Where("driver_id = ?", collaboratorID).
		Update("driver_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.CDDuty{}).
		Where("helper_id = ?", collaboratorID).
		Update("helper_id", nil).Error
}
