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

// ── 进厂业务错误 ──

var (
	ErrWorkshopVisitNotFound = pkgerrors.NotFound("进厂记录不存在")
	ErrWorkshopVisitExists   = pkgerrors.Conflict("该车辆当天已登记进厂")
	ErrWorkshopPlateRequired = pkgerrors.Validation("进厂记录必须指定车辆")
)

// WorkshopVisitService 车辆进厂接口
type WorkshopVisitService interface {
	Create(ctx context.Context, req *dto.SaveWorkshopVisitRequest) (*dto.WorkshopVisitResponse, error)
	ListByDate(ctx context.Context, date dateutil.Date) ([]dto.WorkshopVisitResponse, error)
	Update(ctx context.Context, id int64, req *dto.SaveWorkshopVisitRequest) (*dto.WorkshopVisitResponse, error)
	Delete(ctx context.Context, id int64) error
}

type workshopVisitService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewWorkshopVisitService 创建 WorkshopVisitService 实例
func NewWorkshopVisitService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) WorkshopVisitService {
	return &workshopVisitService{repo: repo, availability: availability, logger: logger}
}

func (s *workshopVisitService) Create(ctx context.Context, req *dto.SaveWorkshopVisitRequest) (*dto.WorkshopVisitResponse, error) {
	w := &model.WorkshopVisit{}
	if err := s.prepare(ctx, w, req, nil); err != nil {
		return nil, err
	}

	if err := s.repo.WorkshopVisit.Create(ctx, w); err != nil {
		if isDuplicate(err) {
			return nil, ErrWorkshopVisitExists
		}
		s.logger.Error("创建进厂记录失败", zap.Error(err))
		return nil, err
	}
	resp := toWorkshopVisitResponse(w)
	return &resp, nil
}

func (s *workshopVisitService) ListByDate(ctx context.Context, date dateutil.Date) ([]dto.WorkshopVisitResponse, error) {
	list, err := s.repo.WorkshopVisit.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("列出进厂记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkshopVisitResponse, 0, len(list))
	for i := range list {
		result = append(result, toWorkshopVisitResponse(&list[i]))
	}
	return result, nil
}

func (s *workshopVisitService) Update(ctx context.Context, id int64, req *dto.SaveWorkshopVisitRequest) (*dto.WorkshopVisitResponse, error) {
	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, w, req, &IgnoreKey{Kind: IgnoreWorkshop, ID: id}); err != nil {
		return nil, err
	}

	if err := s.repo.WorkshopVisit.Update(ctx, w); err != nil {
		if isDuplicate(err) {
			return nil, ErrWorkshopVisitExists
		}
		s.logger.Error("更新进厂记录失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toWorkshopVisitResponse(w)
	return &resp, nil
}

func (s *workshopVisitService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.WorkshopVisit.Delete(ctx, id); err != nil {
		s.logger.Error("删除进厂记录失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *workshopVisitService) get(ctx context.Context, id int64) (*model.WorkshopVisit, error) {
	w, err := s.repo.WorkshopVisit.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWorkshopVisitNotFound
		}
		s.logger.Error("查询进厂记录失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return w, nil
}

// prepare 车辆须已登记；司机与车辆当天须可用（忽略自身）
func (s *workshopVisitService) prepare(ctx context.Context, w *model.WorkshopVisit, req *dto.SaveWorkshopVisitRequest, ignore *IgnoreKey) error {
	if err := requireDate(req.Date); err != nil {
		return err
	}
	plate, err := checkTruck(ctx, s.repo, &req.TruckPlate)
	if err != nil {
		return err
	}
	if plate == nil {
		return ErrWorkshopPlateRequired
	}
	if err := checkCrewMember(ctx, s.repo, req.DriverID, model.RoleDriver); err != nil {
		return err
	}

	crew := Crew{DriverID: req.DriverID, TruckPlate: plate}
	if err := s.availability.EnsureAvailable(ctx, []dateutil.Date{req.Date}, ignore, crew); err != nil {
		return err
	}

	w.Date = req.Date
	w.TruckPlate = *plate
	w.DriverID = req.DriverID
	w.DepartureDate = req.DepartureDate
	w.Note = strings.TrimSpace(req.Note)
	return nil
}

func toWorkshopVisitResponse(w *model.WorkshopVisit) dto.WorkshopVisitResponse {
	return dto.WorkshopVisitResponse{
		ID:            w.ID,
		Date:          w.Date.String(),
		TruckPlate:    w.TruckPlate,
		DriverID:      w.DriverID,
		DepartureDate: w.DepartureDate.Ptr(),
		Note:          w.Note,
	}
}
