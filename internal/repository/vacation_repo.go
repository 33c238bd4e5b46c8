package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// VacationRepository 假期数据访问接口
type VacationRepository interface {
	Create(ctx context.Context, v *model.Vacation) error
	CreateBatch(ctx context.Context, list []model.Vacation) error
	GetByID(ctx context.Context, id int64) (*model.Vacation, error)
	List(ctx context.Context, collaboratorID *int64) ([]model.Vacation, error)
	// ListCovering start <= date <= end 的假期
	ListCovering(ctx context.Context, date dateutil.Date) ([]model.Vacation, error)
	Update(ctx context.Context, v *model.Vacation) error
	Delete(ctx context.Context, id int64) error
	DeleteByCollaborator(ctx context.Context, collaboratorID int64) error
}

type vacationRepo struct {
	db *gorm.DB
}

// NewVacationRepo 创建 VacationRepository 实例
func NewVacationRepo(db *gorm.DB) VacationRepository {
	return &vacationRepo{db: db}
}

func (r *vacationRepo) Create(ctx context.Context, v *model.Vacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vacationRepo) CreateBatch(ctx context.Context, list []model.Vacation) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&list).Error
}

func (r *vacationRepo) GetByID(ctx context.Context, id int64) (*model.Vacation, error) {
	var v model.Vacation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vacationRepo) List(ctx context.Context, collaboratorID *int64) ([]model.Vacation, error) {
	var list []model.Vacation
	db := r.db.WithContext(ctx)
	if collaboratorID != nil {
		db = db.Where("collaborator_id = ?", *collaboratorID)
	}
	err := db.Order("start_date DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *vacationRepo) ListCovering(ctx context.Context, date dateutil.Date) ([]model.Vacation, error) {
	var list []model.Vacation
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&list).Error
	return list, err
}

func (r *vacationRepo) Update(ctx context.Context, v *model.Vacation) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vacationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vacation{}).Error
}

func (r *vacationRepo) DeleteByCollaborator(ctx context.Context, collaboratorID int64) error {
	return r.db.WithContext(ctx).Where("collaborator_id = ?", collaboratorID).Delete(&model.Vacation{}).Error
}
