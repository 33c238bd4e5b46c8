package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 休息日业务错误 ──

var (
	ErrDayOffNotFound = pkgerrors.NotFound("休息日记录不存在")
	ErrDayOffExists   = pkgerrors.Conflict("该人员当天已登记休息")
	ErrDayOffEndDate  = pkgerrors.Validation("休息结束日不能早于休息日")
)

// DayOffService 休息日接口
type DayOffService interface {
	Create(ctx context.Context, req *dto.SaveDayOffRequest) (*dto.DayOffResponse, error)
	// ListByDate 零值日期返回全部
	ListByDate(ctx context.Context, date dateutil.Date) ([]dto.DayOffResponse, error)
	Update(ctx context.Context, id int64, req *dto.SaveDayOffRequest) (*dto.DayOffResponse, error)
	Delete(ctx context.Context, id int64) error
}

type dayOffService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewDayOffService 创建 DayOffService 实例
func NewDayOffService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) DayOffService {
	return &dayOffService{repo: repo, availability: availability, logger: logger}
}

func (s *dayOffService) Create(ctx context.Context, req *dto.SaveDayOffRequest) (*dto.DayOffResponse, error) {
	d := &model.DayOff{}
	if err := s.prepare(ctx, d, req, nil); err != nil {
		return nil, err
	}

	if err := s.repo.DayOff.Create(ctx, d); err != nil {
		if isDuplicate(err) {
			return nil, ErrDayOffExists
		}
		s.logger.Error("创建休息日失败", zap.Error(err))
		return nil, err
	}
	resp := toDayOffResponse(d)
	return &resp, nil
}

func (s *dayOffService) ListByDate(ctx context.Context, date dateutil.Date) ([]dto.DayOffResponse, error) {
	list, err := s.repo.DayOff.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("列出休息日失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DayOffResponse, 0, len(list))
	for i := range list {
		result = append(result, toDayOffResponse(&list[i]))
	}
	return result, nil
}

func (s *dayOffService) Update(ctx context.Context, id int64, req *dto.SaveDayOffRequest) (*dto.DayOffResponse, error) {
	d, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, d, req, &IgnoreKey{Kind: IgnoreDayOff, ID: id}); err != nil {
		return nil, err
	}

	if err := s.repo.DayOff.Update(ctx, d); err != nil {
		if isDuplicate(err) {
			return nil, ErrDayOffExists
		}
		s.logger.Error("更新休息日失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toDayOffResponse(d)
	return &resp, nil
}

func (s *dayOffService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DayOff.Delete(ctx, id); err != nil {
		s.logger.Error("删除休息日失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *dayOffService) get(ctx context.Context, id int64) (*model.DayOff, error) {
	d, err := s.repo.DayOff.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDayOffNotFound
		}
		s.logger.Error("查询休息日失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *dayOffService) prepare(ctx context.Context, d *model.DayOff, req *dto.SaveDayOffRequest, ignore *IgnoreKey) error {
	if err := requireDate(req.Date); err != nil {
		return err
	}
	if req.EndDate.Valid() && req.EndDate.Before(req.Date) {
		return ErrDayOffEndDate
	}
	if err := checkCrewMember(ctx, s.repo, &req.CollaboratorID, ""); err != nil {
		return err
	}

	crew := Crew{PersonIDs: []int64{req.CollaboratorID}}
	if err := s.availability.EnsureAvailable(ctx, []dateutil.Date{req.Date}, ignore, crew); err != nil {
		return err
	}

	d.Date = req.Date
	d.CollaboratorID = req.CollaboratorID
	d.EndDate = req.EndDate
	d.DepartureDate = req.DepartureDate
	d.Note = strings.TrimSpace(req.Note)
	return nil
}

func toDayOffResponse(d *model.DayOff) dto.DayOffResponse {
	return dto.DayOffResponse{
		ID:             d.ID,
		Date:           d.Date.String(),
		CollaboratorID: d.CollaboratorID,
		EndDate:        d.EndDate.Ptr(),
		DepartureDate:  d.DepartureDate.Ptr(),
		Note:           d.Note,
	}
}
