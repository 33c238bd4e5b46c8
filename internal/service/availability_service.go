package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
	"jr-escala/backend/pkg/metrics"
)

// ── 占用计算 ──────────────────────────────────────────────
//
// 给定目标日，汇总以下来源得出不可用的司机 / 助手 / 车辆：
//   1. 假期     start <= t <= end
//   2. 休息日   date == t
//   3. 进厂     date == t（司机 + 车辆）
//   4. CD 值班  date == t（司机 + 助手）
//   5. 独立封锁 start <= t < end；属于派车的封锁跳过，由第 6 步负责
//   6. 派车     t == 登记日，或 days > 0 且 出发日 <= t < 出发日+days；days < 0 跳过
// 人员在各来源中均同时计入司机与助手两个集合。
// ─────────────────────────────────────────────────────────────

// ── 占用模块业务错误 ──

var (
	ErrInvalidIgnoreKind       = pkgerrors.Validation("未知的忽略类型")
	ErrDriverUnavailable       = pkgerrors.Conflict("司机在该日期不可用")
	ErrHelperUnavailable       = pkgerrors.Conflict("助手在该日期不可用")
	ErrCollaboratorUnavailable = pkgerrors.Conflict("人员在该日期不可用")
	ErrTruckUnavailable        = pkgerrors.Conflict("车辆在该日期不可用")
)

// IgnoreKind 可忽略的记录类型
type IgnoreKind string

const (
	IgnoreVacation IgnoreKind = "vacation"
	IgnoreDayOff   IgnoreKind = "day_off"
	IgnoreWorkshop IgnoreKind = "workshop"
	IgnoreCDDuty   IgnoreKind = "cd_duty"
	IgnoreRoute    IgnoreKind = "route"
)

// IgnoreKey 编辑已有记录时排除其自身造成的占用
type IgnoreKey struct {
	Kind IgnoreKind
	ID   int64
}

// NewIgnoreKey kind 为空时返回 nil
func NewIgnoreKey(kind string, id int64) (*IgnoreKey, error) {
	if kind == "" {
		return nil, nil
	}
	switch IgnoreKind(kind) {
	case IgnoreVacation, IgnoreDayOff, IgnoreWorkshop, IgnoreCDDuty, IgnoreRoute:
		return &IgnoreKey{Kind: IgnoreKind(kind), ID: id}, nil
	}
	return nil, ErrInvalidIgnoreKind
}

func (k *IgnoreKey) skips(kind IgnoreKind, id int64) bool {
	return k != nil && k.Kind == kind && k.ID == id
}

// Unavailability 某日不可用资源集合
type Unavailability struct {
	Date    dateutil.Date
	drivers map[int64]struct{}
	helpers map[int64]struct{}
	trucks  map[string]struct{}
}

func newUnavailability(date dateutil.Date) *Unavailability {
	return &Unavailability{
		Date:    date,
		drivers: make(map[int64]struct{}),
		helpers: make(map[int64]struct{}),
		trucks:  make(map[string]struct{}),
	}
}

func (u *Unavailability) markPerson(id *int64) {
	if id == nil {
		return
	}
	u.drivers[*id] = struct{}{}
	u.helpers[*id] = struct{}{}
}

func (u *Unavailability) markTruck(plate string) {
	if p := model.NormalizePlate(plate); p != "" {
		u.trucks[p] = struct{}{}
	}
}

// DriverUnavailable 司机是否不可用
func (u *Unavailability) DriverUnavailable(id int64) bool {
	_, ok := u.drivers[id]
	return ok
}

// HelperUnavailable 助手是否不可用
func (u *Unavailability) HelperUnavailable(id int64) bool {
	_, ok := u.helpers[id]
	return ok
}

// PersonUnavailable 人员在任一角色中不可用
func (u *Unavailability) PersonUnavailable(id int64) bool {
	return u.DriverUnavailable(id) || u.HelperUnavailable(id)
}

// TruckUnavailable 车辆是否不可用（车牌大小写不敏感）
func (u *Unavailability) TruckUnavailable(plate string) bool {
	_, ok := u.trucks[model.NormalizePlate(plate)]
	return ok
}

// Drivers 升序司机 ID
func (u *Unavailability) Drivers() []int64 { return sortedIDs(u.drivers) }

// Helpers 升序助手 ID
func (u *Unavailability) Helpers() []int64 { return sortedIDs(u.helpers) }

// Trucks 升序车牌
func (u *Unavailability) Trucks() []string {
	out := make([]string, 0, len(u.trucks))
	for p := range u.trucks {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Crew 提交前需要校验的资源
type Crew struct {
	DriverID   *int64
	HelperID   *int64
	PersonIDs  []int64
	TruckPlate *string
}

func (c Crew) empty() bool {
	return c.DriverID == nil && c.HelperID == nil && len(c.PersonIDs) == 0 && c.TruckPlate == nil
}

// AvailabilityService 占用计算接口
type AvailabilityService interface {
	// Check 计算目标日不可用资源；只读，可并发调用
	Check(ctx context.Context, date dateutil.Date, ignore *IgnoreKey) (*Unavailability, error)
	// EnsureAvailable 在每个日期上校验 crew，首个冲突以 Conflict 类错误返回
	EnsureAvailable(ctx context.Context, dates []dateutil.Date, ignore *IgnoreKey, crew Crew) error
}

type availabilityService struct {
	repo     *repository.Repository
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, recorder metrics.Recorder, logger *zap.Logger) AvailabilityService {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &availabilityService{repo: repo, recorder: recorder, logger: logger}
}

// availabilitySnapshot 单次计算所需的全部记录
type availabilitySnapshot struct {
	vacations   []model.Vacation
	daysOff     []model.DayOff
	workshops   []model.WorkshopVisit
	cdDuties    []model.CDDuty
	blocks      []model.BlockingEntry
	assignments []model.RouteAssignment
	latest      map[int64]model.DurationAdjustment
}

// ────────────────────── Check ──────────────────────

func (s *availabilityService) Check(ctx context.Context, date dateutil.Date, ignore *IgnoreKey) (*Unavailability, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}

	start := time.Now()
	routes, err := s.loadRoutes(ctx, date)
	var snap *availabilitySnapshot
	if err == nil {
		snap, err = s.loadSnapshot(ctx, date, routes)
	}
	s.recorder.ObserveAvailabilityCheck(time.Since(start), err)
	if err != nil {
		s.logger.Error("加载占用数据失败", zap.String("date", date.String()), zap.Error(err))
		return nil, err
	}

	return computeUnavailability(date, snap, ignore), nil
}

// routeSnapshot 登记日不晚于某日的派车及其最新调整；对更早的目标日同样适用
type routeSnapshot struct {
	assignments []model.RouteAssignment
	latest      map[int64]model.DurationAdjustment
}

func (s *availabilityService) loadRoutes(ctx context.Context, upTo dateutil.Date) (*routeSnapshot, error) {
	var (
		routes routeSnapshot
		err    error
	)
	if routes.assignments, err = s.repo.RouteAssignment.ListUpTo(ctx, upTo); err != nil {
		return nil, fmt.Errorf("查询派车: %w", err)
	}
	if routes.latest, err = s.repo.DurationAdjustment.LatestUpTo(ctx, upTo); err != nil {
		return nil, fmt.Errorf("查询行程调整: %w", err)
	}
	return &routes, nil
}

func (s *availabilityService) loadSnapshot(ctx context.Context, date dateutil.Date, routes *routeSnapshot) (*availabilitySnapshot, error) {
	var (
		snap availabilitySnapshot
		err  error
	)
	if snap.vacations, err = s.repo.Vacation.ListCovering(ctx, date); err != nil {
		return nil, fmt.Errorf("查询假期: %w", err)
	}
	if snap.daysOff, err = s.repo.DayOff.ListByDate(ctx, date); err != nil {
		return nil, fmt.Errorf("查询休息日: %w", err)
	}
	if snap.workshops, err = s.repo.WorkshopVisit.ListByDate(ctx, date); err != nil {
		return nil, fmt.Errorf("查询进厂记录: %w", err)
	}
	if snap.cdDuties, err = s.repo.CDDuty.ListByDate(ctx, date); err != nil {
		return nil, fmt.Errorf("查询 CD 值班: %w", err)
	}
	if snap.blocks, err = s.repo.BlockingEntry.ListStandaloneCovering(ctx, date); err != nil {
		return nil, fmt.Errorf("查询封锁: %w", err)
	}
	snap.assignments = routes.assignments
	snap.latest = routes.latest
	return &snap, nil
}

// computeUnavailability 纯计算；各步骤自行复核日期条件，不依赖查询的过滤精度
func computeUnavailability(target dateutil.Date, snap *availabilitySnapshot, ignore *IgnoreKey) *Unavailability {
	u := newUnavailability(target)

	// 1. 假期
	for i := range snap.vacations {
		v := &snap.vacations[i]
		if ignore.skips(IgnoreVacation, v.ID) || !v.Covers(target) {
			continue
		}
		u.markPerson(&v.CollaboratorID)
	}

	// 2. 休息日
	for i := range snap.daysOff {
		d := &snap.daysOff[i]
		if ignore.skips(IgnoreDayOff, d.ID) || !d.Date.Valid() || !d.Date.Equal(target) {
			continue
		}
		u.markPerson(&d.CollaboratorID)
	}

	// 3. 进厂
	for i := range snap.workshops {
		w := &snap.workshops[i]
		if ignore.skips(IgnoreWorkshop, w.ID) || !w.Date.Valid() || !w.Date.Equal(target) {
			continue
		}
		u.markPerson(w.DriverID)
		u.markTruck(w.TruckPlate)
	}

	// 4. CD 值班
	for i := range snap.cdDuties {
		c := &snap.cdDuties[i]
		if ignore.skips(IgnoreCDDuty, c.ID) || !c.Date.Valid() || !c.Date.Equal(target) {
			continue
		}
		u.markPerson(c.DriverID)
		u.markPerson(c.HelperID)
	}

	// 5. 独立封锁
	for i := range snap.blocks {
		b := &snap.blocks[i]
		if !b.Standalone() || !b.Covers(target) {
			continue
		}
		u.markPerson(&b.CollaboratorID)
	}

	// 6. 派车
	for i := range snap.assignments {
		a := &snap.assignments[i]
		if ignore.skips(IgnoreRoute, a.ID) || !a.Date.Valid() {
			continue
		}
		days := effectiveDays(a, snap.latest)
		if days < 0 {
			continue
		}
		if !routeOccupies(a, days, target) {
			continue
		}
		u.markPerson(a.DriverID)
		u.markPerson(a.HelperID)
		if a.TruckPlate != nil {
			u.markTruck(*a.TruckPlate)
		}
	}

	return u
}

// effectiveDays 最新调整的天数，无调整时取类别计划天数
func effectiveDays(a *model.RouteAssignment, latest map[int64]model.DurationAdjustment) int {
	if adj, ok := latest[a.ID]; ok {
		return adj.NewDays
	}
	return a.Category.PlannedDays()
}

func routeOccupies(a *model.RouteAssignment, days int, target dateutil.Date) bool {
	if target.Equal(a.Date) {
		return true
	}
	if days <= 0 {
		return false
	}
	departure := a.EffectiveDeparture()
	return target.WithinHalfOpen(departure, departure.AddDays(days))
}

// ────────────────────── EnsureAvailable ──────────────────────

func (s *availabilityService) EnsureAvailable(ctx context.Context, dates []dateutil.Date, ignore *IgnoreKey, crew Crew) error {
	if crew.empty() {
		return nil
	}

	if len(dates) == 0 {
		return nil
	}

	var last dateutil.Date
	for _, d := range dates {
		if err := requireDate(d); err != nil {
			return err
		}
		if d.After(last) {
			last = d
		}
	}

	// 派车快照按最晚日期加载一次，每个日期只重新读取当日记录
	routes, err := s.loadRoutes(ctx, last)
	if err != nil {
		s.logger.Error("加载派车数据失败", zap.String("date", last.String()), zap.Error(err))
		return err
	}

	for _, d := range dates {
		start := time.Now()
		snap, err := s.loadSnapshot(ctx, d, routes)
		s.recorder.ObserveAvailabilityCheck(time.Since(start), err)
		if err != nil {
			s.logger.Error("加载占用数据失败", zap.String("date", d.String()), zap.Error(err))
			return err
		}
		u := computeUnavailability(d, snap, ignore)
		if crew.DriverID != nil && u.DriverUnavailable(*crew.DriverID) {
			s.recorder.IncConflict("driver")
			return fmt.Errorf("%w: 司机 #%d，日期 %s", ErrDriverUnavailable, *crew.DriverID, d)
		}
		if crew.HelperID != nil && u.HelperUnavailable(*crew.HelperID) {
			s.recorder.IncConflict("helper")
			return fmt.Errorf("%w: 助手 #%d，日期 %s", ErrHelperUnavailable, *crew.HelperID, d)
		}
		for _, id := range crew.PersonIDs {
			if u.PersonUnavailable(id) {
				s.recorder.IncConflict("collaborator")
				return fmt.Errorf("%w: 人员 #%d，日期 %s", ErrCollaboratorUnavailable, id, d)
			}
		}
		if crew.TruckPlate != nil && u.TruckUnavailable(*crew.TruckPlate) {
			s.recorder.IncConflict("truck")
			return fmt.Errorf("%w: 车辆 %s，日期 %s", ErrTruckUnavailable, model.NormalizePlate(*crew.TruckPlate), d)
		}
	}
	return nil
}
