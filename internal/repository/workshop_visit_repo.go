package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// WorkshopVisitRepository 车辆进厂数据访问接口
type WorkshopVisitRepository interface {
	Create(ctx context.Context, w *model.WorkshopVisit) error
	GetByID(ctx context.Context, id int64) (*model.WorkshopVisit, error)
	// ListByDate date 为零值时返回全部
	ListByDate(ctx context.Context, date dateutil.Date) ([]model.WorkshopVisit, error)
	Update(ctx context.Context, w *model.WorkshopVisit) error
	Delete(ctx context.Context, id int64) error
	ClearDriver(ctx context.Context, collaboratorID int64) error
}

type workshopVisitRepo struct {
	db *gorm.DB
}

// NewWorkshopVisitRepo 创建 WorkshopVisitRepository 实例
func NewWorkshopVisitRepo(db *gorm.DB) WorkshopVisitRepository {
	return &workshopVisitRepo{db: db}
}

func (r *workshopVisitRepo) Create(ctx context.Context, w *model.WorkshopVisit) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workshopVisitRepo) GetByID(ctx context.Context, id int64) (*model.WorkshopVisit, error) {
	var w model.WorkshopVisit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workshopVisitRepo) ListByDate(ctx context.Context, date dateutil.Date) ([]model.WorkshopVisit, error) {
	var list []model.WorkshopVisit
	db := r.db.WithContext(ctx)
	if date.Valid() {
		db = db.Where("date = ?", date)
	}
	err := db.Order("date DESC, truck_plate ASC").Find(&list).Error
	return list, err
}

func (r *workshopVisitRepo) Update(ctx context.Context, w *model.WorkshopVisit) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *workshopVisitRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkshopVisit{}).Error
}

func (r *workshopVisitRepo) ClearDriver(ctx context.Context, collaboratorID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.WorkshopVisit{}).
		Where("driver_id = ?", collaboratorID).
		Update("driver_id", nil).Error
}
