package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
)

// TruckRepository 车辆数据访问接口
type TruckRepository interface {
	Create(ctx context.Context, t *model.Truck) error
	GetByID(ctx context.Context, id int64) (*model.Truck, error)
	GetByPlate(ctx context.Context, plate string) (*model.Truck, error)
	List(ctx context.Context, activeOnly bool) ([]model.Truck, error)
	Update(ctx context.Context, t *model.Truck) error
	Delete(ctx context.Context, id int64) error
}

type truckRepo struct {
	db *gorm.DB
}

// NewTruckRepo 创建 TruckRepository 实例
func NewTruckRepo(db *gorm.DB) TruckRepository {
	return &truckRepo{db: db}
}

func (r *truckRepo) Create(ctx context.Context, t *model.Truck) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *truckRepo) GetByID(ctx context.Context, id int64) (*model.Truck, error) {
	var t model.Truck
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByPlate plate 须为规范形式
func (r *truckRepo) GetByPlate(ctx context.Context, plate string) (*model.Truck, error) {
	var t model.Truck
	if err := r.db.WithContext(ctx).Where("plate = ?", plate).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *truckRepo) List(ctx context.Context, activeOnly bool) ([]model.Truck, error) {
	var list []model.Truck
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	err := db.Order("plate ASC").Find(&list).Error
	return list, err
}

func (r *truckRepo) Update(ctx context.Context, t *model.Truck) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *truckRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Truck{}).Error
}
