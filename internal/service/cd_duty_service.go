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

// ── 配送中心值班业务错误 ──

var ErrCDDutyNotFound = pkgerrors.NotFound("值班记录不存在")

// CDDutyService 配送中心值班接口
type CDDutyService interface {
	Create(ctx context.Context, req *dto.SaveCDDutyRequest) (*dto.CDDutyResponse, error)
	ListByDate(ctx context.Context, date dateutil.Date) ([]dto.CDDutyResponse, error)
	Update(ctx context.Context, id int64, req *dto.SaveCDDutyRequest) (*dto.CDDutyResponse, error)
	Delete(ctx context.Context, id int64) error
}

type cdDutyService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewCDDutyService 创建 CDDutyService 实例
func NewCDDutyService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) CDDutyService {
	return &cdDutyService{repo: repo, availability: availability, logger: logger}
}

func (s *cdDutyService) Create(ctx context.Context, req *dto.SaveCDDutyRequest) (*dto.CDDutyResponse, error) {
	d := &model.CDDuty{}
	if err := s.prepare(ctx, d, req, nil); err != nil {
		return nil, err
	}

	if err := s.repo.CDDuty.Create(ctx, d); err != nil {
		s.logger.Error("创建值班失败", zap.Error(err))
		return nil, err
	}
	resp := toCDDutyResponse(d)
	return &resp, nil
}

func (s *cdDutyService) ListByDate(ctx context.Context, date dateutil.Date) ([]dto.CDDutyResponse, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}
	list, err := s.repo.CDDuty.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("列出值班失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CDDutyResponse, 0, len(list))
	for i := range list {
		result = append(result, toCDDutyResponse(&list[i]))
	}
	return result, nil
}

func (s *cdDutyService) Update(ctx context.Context, id int64, req *dto.SaveCDDutyRequest) (*dto.CDDutyResponse, error) {
	d, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, d, req, &IgnoreKey{Kind: IgnoreCDDuty, ID: id}); err != nil {
		return nil, err
	}

	if err := s.repo.CDDuty.Update(ctx, d); err != nil {
		s.logger.Error("更新值班失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCDDutyResponse(d)
	return &resp, nil
}

func (s *cdDutyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.CDDuty.Delete(ctx, id); err != nil {
		s.logger.Error("删除值班失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *cdDutyService) get(ctx context.Context, id int64) (*model.CDDuty, error) {
	d, err := s.repo.CDDuty.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCDDutyNotFound
		}
		s.logger.Error("查询值班失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *cdDutyService) prepare(ctx context.Context, d *model.CDDuty, req *dto.SaveCDDutyRequest, ignore *IgnoreKey) error {
	if err := requireDate(req.Date); err != nil {
		return err
	}
	if req.DriverID == nil && req.HelperID == nil {
		return ErrCrewRequired
	}
	if err := checkCrew(ctx, s.repo, req.DriverID, req.HelperID); err != nil {
		return err
	}

	crew := Crew{DriverID: req.DriverID, HelperID: req.HelperID}
	if err := s.availability.EnsureAvailable(ctx, []dateutil.Date{req.Date}, ignore, crew); err != nil {
		return err
	}

	d.Date = req.Date
	d.DriverID = req.DriverID
	d.HelperID = req.HelperID
	d.Note = strings.TrimSpace(req.Note)
	return nil
}

func toCDDutyResponse(d *model.CDDuty) dto.CDDutyResponse {
	return dto.CDDutyResponse{
		ID:       d.ID,
		Date:     d.Date.String(),
		DriverID: d.DriverID,
		HelperID: d.HelperID,
		Note:     d.Note,
	}
}
