package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// WeeklyRouteRepository 每周线路模板数据访问接口
type WeeklyRouteRepository interface {
	Create(ctx context.Context, w *model.WeeklyRoute) error
	GetByID(ctx context.Context, id int64) (*model.WeeklyRoute, error)
	// List weekday 为 nil 时返回全部
	List(ctx context.Context, weekday *int) ([]model.WeeklyRoute, error)
	Update(ctx context.Context, w *model.WeeklyRoute) error
	Delete(ctx context.Context, id int64) error
}

type weeklyRouteRepo struct {
	db *gorm.DB
}

// NewWeeklyRouteRepo 创建 WeeklyRouteRepository 实例
func NewWeeklyRouteRepo(db *gorm.DB) WeeklyRouteRepository {
	return &weeklyRouteRepo{db: db}
}

func (r *weeklyRouteRepo) Create(ctx context.Context, w *model.WeeklyRoute) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *weeklyRouteRepo) GetByID(ctx context.Context, id int64) (*model.WeeklyRoute, error) {
	var w model.WeeklyRoute
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *weeklyRouteRepo) List(ctx context.Context, weekday *int) ([]model.WeeklyRoute, error) {
	var list []model.WeeklyRoute
	db := r.db.WithContext(ctx)
	if weekday != nil {
		db = db.Where("weekday = ?", *weekday)
	}
	err := db.Order("weekday ASC, route_number ASC, destination ASC").Find(&list).Error
	return list, err
}

func (r *weeklyRouteRepo) Update(ctx context.Context, w *model.WeeklyRoute) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *weeklyRouteRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WeeklyRoute{}).Error
}

// ── 屏蔽线路 ──

// SuppressedRouteRepository 屏蔽线路数据访问接口
type SuppressedRouteRepository interface {
	// Create 已存在同一 (日期, 线路) 时静默忽略
	Create(ctx context.Context, s *model.SuppressedRoute) error
	ListByDate(ctx context.Context, date dateutil.Date) ([]model.SuppressedRoute, error)
	DeleteByDate(ctx context.Context, date dateutil.Date) (int64, error)
}

type suppressedRouteRepo struct {
	db *gorm.DB
}

// NewSuppressedRouteRepo 创建 SuppressedRouteRepository 实例
func NewSuppressedRouteRepo(db *gorm.DB) SuppressedRouteRepository {
	return &suppressedRouteRepo{db: db}
}

func (r *suppressedRouteRepo) Create(ctx context.Context, s *model.SuppressedRoute) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(s).Error
}

func (r *suppressedRouteRepo) ListByDate(ctx context.Context, date dateutil.Date) ([]model.SuppressedRoute, error) {
	var list []model.SuppressedRoute
	err := r.db.WithContext(ctx).Where("date = ?", date).Find(&list).Error
	return list, err
}

func (r *suppressedRouteRepo) DeleteByDate(ctx context.Context, date dateutil.Date) (int64, error) {
	res := r.db.WithContext(ctx).Where("date = ?", date).Delete(&model.SuppressedRoute{})
	return res.RowsAffected, res.Error
}
