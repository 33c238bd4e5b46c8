package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 派车业务错误 ──

var (
	ErrDepartureBeforeDate  = pkgerrors.Validation("出发日不能早于登记日")
	ErrDestinationRequired  = pkgerrors.Validation("目的地不能为空")
	ErrInvalidCategory      = pkgerrors.Validation("未知的行程类别")
	ErrRouteDuplicate       = pkgerrors.Conflict("该日期已存在相同线路")
	ErrRouteNumberNotNumber = pkgerrors.Validation("线路编号不以数字开头，无法自动复制")
)

var routeNumberPattern = regexp.MustCompile(`^(\d+)(.*)$`)

// RouteAssignmentService 派车接口
type RouteAssignmentService interface {
	Create(ctx context.Context, req *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error)
	Get(ctx context.Context, id int64) (*dto.RouteAssignmentResponse, error)
	ListByDate(ctx context.Context, date dateutil.Date) ([]dto.RouteAssignmentResponse, error)
	// Update 整体替换并重建封锁；自动标记为已审核
	Update(ctx context.Context, id int64, req *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error)
	// Delete 删除派车及其封锁、调整日志，并屏蔽当日该线路
	Delete(ctx context.Context, id int64) error
	// Duplicate 同日复制为下一个空闲编号，不带人员与车辆
	Duplicate(ctx context.Context, id int64) (*dto.RouteAssignmentResponse, error)
}

type routeAssignmentService struct {
	repo         *repository.Repository
	availability AvailabilityService
	blocking     BlockingService
	logger       *zap.Logger
}

// NewRouteAssignmentService 创建 RouteAssignmentService 实例
func NewRouteAssignmentService(repo *repository.Repository, availability AvailabilityService, blocking BlockingService, logger *zap.Logger) RouteAssignmentService {
	return &routeAssignmentService{repo: repo, availability: availability, blocking: blocking, logger: logger}
}

// routeDraft 校验通过的派车字段
type routeDraft struct {
	date        dateutil.Date
	departure   dateutil.Date
	routeNumber string
	destination string
	truckPlate  *string
	driverID    *int64
	helperID    *int64
	category    model.RouteCategory
	note        string
}

func (d *routeDraft) apply(a *model.RouteAssignment) {
	a.Date = d.date
	a.DepartureDate = d.departure
	a.RouteNumber = d.routeNumber
	a.Destination = d.destination
	a.TruckPlate = d.truckPlate
	a.DriverID = d.driverID
	a.HelperID = d.helperID
	a.Category = d.category
	a.Note = d.note
}

func (d *routeDraft) crew() Crew {
	return Crew{DriverID: d.driverID, HelperID: d.helperID, TruckPlate: d.truckPlate}
}

// ────────────────────── Create ──────────────────────

func (s *routeAssignmentService) Create(ctx context.Context, req *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error) {
	draft, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureLabelFree(ctx, draft, 0); err != nil {
		return nil, err
	}

	dates := occupancyDates(draft.date, draft.departure, draft.category.PlannedDays())
	if err := s.availability.EnsureAvailable(ctx, dates, nil, draft.crew()); err != nil {
		return nil, err
	}

	a := &model.RouteAssignment{}
	draft.apply(a)

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.RouteAssignment.Create(ctx, a); err != nil {
			if isDuplicate(err) {
				return ErrRouteDuplicate
			}
			s.logger.Error("创建派车失败", zap.Error(err))
			return err
		}
		return s.blocking.CreateBlocks(ctx, tx, a.ID, draft.departure, a.CrewIDs(), a.Category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("派车已创建", zap.Int64("id", a.ID), zap.String("label", a.Label()), zap.String("date", a.Date.String()))
	resp := toRouteAssignmentResponse(a)
	return &resp, nil
}

// ────────────────────── Query ──────────────────────

func (s *routeAssignmentService) Get(ctx context.Context, id int64) (*dto.RouteAssignmentResponse, error) {
	a, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toRouteAssignmentResponse(a)
	return &resp, nil
}

func (s *routeAssignmentService) ListByDate(ctx context.Context, date dateutil.Date) ([]dto.RouteAssignmentResponse, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}
	list, err := s.repo.RouteAssignment.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("列出派车失败", zap.String("date", date.String()), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RouteAssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toRouteAssignmentResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *routeAssignmentService) Update(ctx context.Context, id int64, req *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error) {
	existing, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	draft, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureLabelFree(ctx, draft, id); err != nil {
		return nil, err
	}

	// 已有调整时沿用最新有效天数，否则取新类别的计划天数
	days := draft.category.PlannedDays()
	latest, err := s.repo.DurationAdjustment.Latest(ctx, id)
	adjusted := err == nil
	switch {
	case adjusted:
		days = latest.NewDays
	case !isNotFound(err):
		s.logger.Error("查询行程调整失败", zap.Int64("assignment_id", id), zap.Error(err))
		return nil, err
	}

	ignore := &IgnoreKey{Kind: IgnoreRoute, ID: id}
	if err := s.availability.EnsureAvailable(ctx, occupancyDates(draft.date, draft.departure, days), ignore, draft.crew()); err != nil {
		return nil, err
	}

	labelChanged := !existing.Date.Equal(draft.date) ||
		existing.RouteNumber != draft.routeNumber ||
		existing.Destination != draft.destination

	updated := *existing
	draft.apply(&updated)
	updated.Reviewed = true

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if labelChanged {
			if err := suppressLabel(ctx, tx, existing); err != nil {
				s.logger.Error("屏蔽旧线路失败", zap.Int64("id", id), zap.Error(err))
				return err
			}
		}
		if err := tx.RouteAssignment.Update(ctx, &updated); err != nil {
			if isDuplicate(err) {
				return ErrRouteDuplicate
			}
			s.logger.Error("更新派车失败", zap.Int64("id", id), zap.Error(err))
			return err
		}

		if err := s.blocking.RemoveBlocks(ctx, tx, id); err != nil {
			return err
		}
		if err := s.blocking.CreateBlocks(ctx, tx, id, draft.departure, updated.CrewIDs(), updated.Category); err != nil {
			return err
		}
		if !adjusted {
			return nil
		}
		return s.blocking.RescheduleBlocks(ctx, tx, id, draft.departure.AddDays(days), days <= 0)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("派车已更新", zap.Int64("id", id), zap.String("label", updated.Label()))
	resp := toRouteAssignmentResponse(&updated)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *routeAssignmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.blocking.RemoveBlocks(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.DurationAdjustment.DeleteByAssignment(ctx, id); err != nil {
			s.logger.Error("删除行程调整失败", zap.Int64("id", id), zap.Error(err))
			return err
		}
		if err := tx.RouteAssignment.Delete(ctx, id); err != nil {
			s.logger.Error("删除派车失败", zap.Int64("id", id), zap.Error(err))
			return err
		}
		if err := suppressLabel(ctx, tx, a); err != nil {
			s.logger.Error("屏蔽线路失败", zap.Int64("id", id), zap.Error(err))
			return err
		}
		s.logger.Info("派车已删除", zap.Int64("id", id), zap.String("label", a.Label()))
		return nil
	})
}

// ────────────────────── Duplicate ──────────────────────

func (s *routeAssignmentService) Duplicate(ctx context.Context, id int64) (*dto.RouteAssignmentResponse, error) {
	src, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	m := routeNumberPattern.FindStringSubmatch(strings.TrimSpace(src.RouteNumber))
	if m == nil {
		return nil, ErrRouteNumberNotNumber
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, ErrRouteNumberNotNumber
	}
	suffix := m[2]

	var number string
	for {
		n++
		number = strconv.Itoa(n) + suffix
		_, err := s.repo.RouteAssignment.FindByLabel(ctx, src.Date, number, src.Destination)
		if isNotFound(err) {
			break
		}
		if err != nil {
			s.logger.Error("查询线路标签失败", zap.Error(err))
			return nil, err
		}
	}

	dup := &model.RouteAssignment{
		Date:          src.Date,
		DepartureDate: src.DepartureDate,
		RouteNumber:   number,
		Destination:   src.Destination,
		Category:      src.Category,
		Note:          src.Note,
	}
	if err := s.repo.RouteAssignment.Create(ctx, dup); err != nil {
		if isDuplicate(err) {
			return nil, ErrRouteDuplicate
		}
		s.logger.Error("复制派车失败", zap.Int64("source_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("派车已复制", zap.Int64("source_id", id), zap.Int64("id", dup.ID), zap.String("label", dup.Label()))
	resp := toRouteAssignmentResponse(dup)
	return &resp, nil
}

// ── 内部辅助方法 ──

func (s *routeAssignmentService) get(ctx context.Context, repo *repository.Repository, id int64) (*model.RouteAssignment, error) {
	a, err := repo.RouteAssignment.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询派车失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *routeAssignmentService) validate(ctx context.Context, req *dto.SaveRouteAssignmentRequest) (*routeDraft, error) {
	if err := requireDate(req.Date); err != nil {
		return nil, err
	}
	departure := req.DepartureDate
	if departure.IsZero() {
		departure = dateutil.DefaultDeparture(req.Date)
	} else if departure.Before(req.Date) {
		return nil, ErrDepartureBeforeDate
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, ErrDestinationRequired
	}

	category := model.CategoryNone
	if req.Category != "" {
		category = model.RouteCategory(req.Category)
		if !category.Valid() {
			return nil, ErrInvalidCategory
		}
	}

	if err := checkCrew(ctx, s.repo, req.DriverID, req.HelperID); err != nil {
		return nil, err
	}
	plate, err := checkTruck(ctx, s.repo, req.TruckPlate)
	if err != nil {
		return nil, err
	}

	return &routeDraft{
		date:        req.Date,
		departure:   departure,
		routeNumber: strings.TrimSpace(req.RouteNumber),
		destination: destination,
		truckPlate:  plate,
		driverID:    req.DriverID,
		helperID:    req.HelperID,
		category:    category,
		note:        strings.TrimSpace(req.Note),
	}, nil
}

// ensureLabelFree 同日同标签只允许一条派车；selfID 为编辑中的记录
func (s *routeAssignmentService) ensureLabelFree(ctx context.Context, d *routeDraft, selfID int64) error {
	other, err := s.repo.RouteAssignment.FindByLabel(ctx, d.date, d.routeNumber, d.destination)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		s.logger.Error("查询线路标签失败", zap.Error(err))
		return err
	}
	if other.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRouteDuplicate, model.ComposeLabel(d.routeNumber, d.destination))
}

func toRouteAssignmentResponse(a *model.RouteAssignment) dto.RouteAssignmentResponse {
	return dto.RouteAssignmentResponse{
		ID:            a.ID,
		Date:          a.Date.String(),
		DepartureDate: a.EffectiveDeparture().String(),
		Label:         a.Label(),
		RouteNumber:   a.RouteNumber,
		Destination:   a.Destination,
		TruckPlate:    a.TruckPlate,
		DriverID:      a.DriverID,
		HelperID:      a.HelperID,
		Category:      string(a.Category),
		PlannedDays:   a.Category.PlannedDays(),
		Note:          a.Note,
		Reviewed:      a.Reviewed,
	}
}
