package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// RouteAssignmentFilter 派车查询条件（零值日期表示不限）
type RouteAssignmentFilter struct {
	From       dateutil.Date
	To         dateutil.Date
	DriverID   *int64
	TruckPlate string
}

// RouteAssignmentRepository 派车数据访问接口
type RouteAssignmentRepository interface {
	Create(ctx context.Context, a *model.RouteAssignment) error
	GetByID(ctx context.Context, id int64) (*model.RouteAssignment, error)
	Update(ctx context.Context, a *model.RouteAssignment) error
	Delete(ctx context.Context, id int64) error
	// ListByDate 指定登记日的全部派车
	ListByDate(ctx context.Context, date dateutil.Date) ([]model.RouteAssignment, error)
	// ListUpTo 登记日不晚于 date 的全部派车（占用计算的候选集）
	ListUpTo(ctx context.Context, date dateutil.Date) ([]model.RouteAssignment, error)
	List(ctx context.Context, filter RouteAssignmentFilter) ([]model.RouteAssignment, error)
	// FindByLabel 同一登记日同一线路标签的派车
	FindByLabel(ctx context.Context, date dateutil.Date, routeNumber, destination string) (*model.RouteAssignment, error)
	// ClearCollaborator 清除派车中对该人员的司机/助手引用
	ClearCollaborator(ctx context.Context, collaboratorID int64) error
}

type routeAssignmentRepo struct {
	db *gorm.DB
}

// NewRouteAssignmentRepo 创建 RouteAssignmentRepository 实例
func NewRouteAssignmentRepo(db *gorm.DB) RouteAssignmentRepository {
	return &routeAssignmentRepo{db: db}
}

func (r *routeAssignmentRepo) Create(ctx context.Context, a *model.RouteAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *routeAssignmentRepo) GetByID(ctx context.Context, id int64) (*model.RouteAssignment, error) {
	var a model.RouteAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *routeAssignmentRepo) Update(ctx context.Context, a *model.RouteAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *routeAssignmentRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RouteAssignment{}).Error
}

func (r *routeAssignmentRepo) ListByDate(ctx context.Context, date dateutil.Date) ([]model.RouteAssignment, error) {
	var list []model.RouteAssignment
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("route_number ASC, destination ASC").
		Find(&list).Error
	return list, err
}

func (r *routeAssignmentRepo) ListUpTo(ctx context.Context, date dateutil.Date) ([]model.RouteAssignment, error) {
	var list []model.RouteAssignment
	err := r.db.WithContext(ctx).
		Where("date <= ?", date).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *routeAssignmentRepo) List(ctx context.Context, filter RouteAssignmentFilter) ([]model.RouteAssignment, error) {
	var list []model.RouteAssignment
	db := r.db.WithContext(ctx)

	if filter.From.Valid() {
		db = db.Where("date >= ?", filter.From)
	}
	if filter.To.Valid() {
		db = db.Where("date <= ?", filter.To)
	}
	if filter.DriverID != nil {
		db = db.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.TruckPlate != "" {
		db = db.Where("truck_plate = ?", filter.TruckPlate)
	}

	err := db.Order("date DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *routeAssignmentRepo) FindByLabel(ctx context.Context, date dateutil.Date, routeNumber, destination string) (*model.RouteAssignment, error) {
	var a model.RouteAssignment
	err := r.db.WithContext(ctx).
		Where("date = ? AND route_number = ? AND destination = ?", date, routeNumber, destination).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *routeAssignmentRepo) ClearCollaborator(ctx context.Context, collaboratorID int64) error {
	db := r.db.WithContext(ctx).Model(&model.RouteAssignment{})
	if err := db.Where("driver_id = ?", collaboratorID).Update("driver_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.RouteAssignment{}).
		Where("helper_id = ?", collaboratorID).
		Update("helper_id", nil).Error
}
