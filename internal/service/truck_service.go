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

// ── 车辆模块业务错误 ──

var (
	ErrTruckNotFound      = pkgerrors.NotFound("车辆不存在")
	ErrTruckPlateRequired = pkgerrors.Validation("车牌不能为空")
	ErrTruckPlateExists   = pkgerrors.Conflict("车牌已存在")
)

// TruckService 车辆接口
type TruckService interface {
	Create(ctx context.Context, req *dto.CreateTruckRequest) (*dto.TruckResponse, error)
	Get(ctx context.Context, id int64) (*dto.TruckResponse, error)
	List(ctx context.Context, req *dto.TruckListRequest) ([]dto.TruckResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTruckRequest) (*dto.TruckResponse, error)
	Delete(ctx context.Context, id int64) error
	// ListAvailable 指定日期未进厂且未出车的启用车辆
	ListAvailable(ctx context.Context, date dateutil.Date, ignore *IgnoreKey) ([]dto.TruckResponse, error)
	// InMaintenance 车辆当天是否登记了进厂
	InMaintenance(ctx context.Context, plate string, date dateutil.Date) (*dto.MaintenanceResponse, error)
}

type truckService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewTruckService 创建 TruckService 实例
func NewTruckService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) TruckService {
	return &truckService{repo: repo, availability: availability, logger: logger}
}

func (s *truckService) Create(ctx context.Context, req *dto.CreateTruckRequest) (*dto.TruckResponse, error) {
	t := &model.Truck{
		Plate:  model.NormalizePlate(req.Plate),
		Model:  strings.TrimSpace(req.Model),
		Note:   strings.TrimSpace(req.Note),
		Active: true,
	}
	if t.Plate == "" {
		return nil, ErrTruckPlateRequired
	}

	if err := s.repo.Truck.Create(ctx, t); err != nil {
		if isDuplicate(err) {
			return nil, ErrTruckPlateExists
		}
		s.logger.Error("创建车辆失败", zap.Error(err))
		return nil, err
	}
	resp := toTruckResponse(t)
	return &resp, nil
}

func (s *truckService) Get(ctx context.Context, id int64) (*dto.TruckResponse, error) {
	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTruckResponse(t)
	return &resp, nil
}

func (s *truckService) List(ctx context.Context, req *dto.TruckListRequest) ([]dto.TruckResponse, error) {
	list, err := s.repo.Truck.List(ctx, req.ActiveOnly)
	if err != nil {
		s.logger.Error("列出车辆失败", zap.Error(err))
		return nil, err
	}
	return toTruckResponses(list), nil
}

func (s *truckService) ListAvailable(ctx context.Context, date dateutil.Date, ignore *IgnoreKey) ([]dto.TruckResponse, error) {
	u, err := s.availability.Check(ctx, date, ignore)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Truck.List(ctx, true)
	if err != nil {
		s.logger.Error("列出车辆失败", zap.Error(err))
		return nil, err
	}

	available := make([]model.Truck, 0, len(list))
	for _, t := range list {
		if !u.TruckUnavailable(t.Plate) {
			available = append(available, t)
		}
	}
	return toTruckResponses(available), nil
}

func (s *truckService) InMaintenance(ctx context.Context, plate string, date dateutil.Date) (*dto.MaintenanceResponse, error) {
	plate = model.NormalizePlate(plate)
	if plate == "" {
		return nil, ErrTruckPlateRequired
	}
	if err := requireDate(date); err != nil {
		return nil, err
	}

	visits, err := s.repo.WorkshopVisit.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询进厂记录失败", zap.String("date", date.String()), zap.Error(err))
		return nil, err
	}
	resp := &dto.MaintenanceResponse{Plate: plate, Date: date.String()}
	for _, w := range visits {
		if model.NormalizePlate(w.TruckPlate) == plate {
			resp.InMaintenance = true
			resp.WorkshopVisitID = &w.ID
			break
		}
	}
	return resp, nil
}

func (s *truckService) Update(ctx context.Context, id int64, req *dto.UpdateTruckRequest) (*dto.TruckResponse, error) {
	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		t.Plate = model.NormalizePlate(*req.Plate)
		if t.Plate == "" {
			return nil, ErrTruckPlateRequired
		}
	}
	if req.Model != nil {
		t.Model = strings.TrimSpace(*req.Model)
	}
	if req.Note != nil {
		t.Note = strings.TrimSpace(*req.Note)
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := s.repo.Truck.Update(ctx, t); err != nil {
		if isDuplicate(err) {
			return nil, ErrTruckPlateExists
		}
		s.logger.Error("更新车辆失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toTruckResponse(t)
	return &resp, nil
}

func (s *truckService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Truck.Delete(ctx, id); err != nil {
		s.logger.Error("删除车辆失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *truckService) get(ctx context.Context, id int64) (*model.Truck, error) {
	t, err := s.repo.Truck.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTruckNotFound
		}
		s.logger.Error("查询车辆失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func toTruckResponse(t *model.Truck) dto.TruckResponse {
	return dto.TruckResponse{
		ID:     t.ID,
		Plate:  t.Plate,
		Model:  t.Model,
		Note:   t.Note,
		Active: t.Active,
	}
}

func toTruckResponses(list []model.Truck) []dto.TruckResponse {
	result := make([]dto.TruckResponse, 0, len(list))
	for i := range list {
		result = append(result, toTruckResponse(&list[i]))
	}
	return result
}
