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
	"jr-escala/backend/pkg/metrics"
)

// ── 每周模板业务错误 ──

var (
	ErrWeeklyRouteNotFound = pkgerrors.NotFound("线路模板不存在")
	ErrRouteNumberRequired = pkgerrors.Validation("线路编号不能为空")
	ErrInvalidWeekday      = pkgerrors.Validation("星期必须在 1 到 7 之间")
)

// WeeklyRouteService 每周线路模板接口
type WeeklyRouteService interface {
	Create(ctx context.Context, req *dto.CreateWeeklyRouteRequest) (*dto.WeeklyRouteResponse, error)
	List(ctx context.Context, req *dto.WeeklyRouteListRequest) ([]dto.WeeklyRouteResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateWeeklyRouteRequest) (*dto.WeeklyRouteResponse, error)
	Delete(ctx context.Context, id int64) error

	// Pending 当日尚未生成且未被屏蔽的模板
	Pending(ctx context.Context, date dateutil.Date) ([]dto.WeeklyRouteResponse, error)
	// Materialize 按模板生成当日派车，返回新增数量；唯一约束冲突视为已存在
	Materialize(ctx context.Context, req *dto.MaterializeRequest) (*dto.MaterializeResponse, error)
	Suppress(ctx context.Context, req *dto.SuppressRouteRequest) error
	ClearSuppressed(ctx context.Context, date dateutil.Date) (*dto.ClearSuppressedResponse, error)
}

type weeklyRouteService struct {
	repo     *repository.Repository
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewWeeklyRouteService 创建 WeeklyRouteService 实例
func NewWeeklyRouteService(repo *repository.Repository, recorder metrics.Recorder, logger *zap.Logger) WeeklyRouteService {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &weeklyRouteService{repo: repo, recorder: recorder, logger: logger}
}

// ────────────────────── CRUD ──────────────────────

func (s *weeklyRouteService) Create(ctx context.Context, req *dto.CreateWeeklyRouteRequest) (*dto.WeeklyRouteResponse, error) {
	w := &model.WeeklyRoute{
		Weekday:     req.Weekday,
		RouteNumber: strings.TrimSpace(req.RouteNumber),
		Destination: strings.TrimSpace(req.Destination),
		Note:        strings.TrimSpace(req.Note),
	}
	if err := validateWeeklyRoute(w); err != nil {
		return nil, err
	}

	if err := s.repo.WeeklyRoute.Create(ctx, w); err != nil {
		s.logger.Error("创建线路模板失败", zap.Error(err))
		return nil, err
	}
	resp := toWeeklyRouteResponse(w)
	return &resp, nil
}

func (s *weeklyRouteService) List(ctx context.Context, req *dto.WeeklyRouteListRequest) ([]dto.WeeklyRouteResponse, error) {
	list, err := s.repo.WeeklyRoute.List(ctx, req.Weekday)
	if err != nil {
		s.logger.Error("列出线路模板失败", zap.Error(err))
		return nil, err
	}
	return toWeeklyRouteResponses(list), nil
}

func (s *weeklyRouteService) Update(ctx context.Context, id int64, req *dto.UpdateWeeklyRouteRequest) (*dto.WeeklyRouteResponse, error) {
	w, err := s.repo.WeeklyRoute.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWeeklyRouteNotFound
		}
		s.logger.Error("查询线路模板失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if req.Weekday != nil {
		w.Weekday = *req.Weekday
	}
	if req.RouteNumber != nil {
		w.RouteNumber = strings.TrimSpace(*req.RouteNumber)
	}
	if req.Destination != nil {
		w.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.Note != nil {
		w.Note = strings.TrimSpace(*req.Note)
	}
	if err := validateWeeklyRoute(w); err != nil {
		return nil, err
	}

	if err := s.repo.WeeklyRoute.Update(ctx, w); err != nil {
		s.logger.Error("更新线路模板失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toWeeklyRouteResponse(w)
	return &resp, nil
}

func (s *weeklyRouteService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.WeeklyRoute.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrWeeklyRouteNotFound
		}
		return err
	}
	if err := s.repo.WeeklyRoute.Delete(ctx, id); err != nil {
		s.logger.Error("删除线路模板失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 生成 ──────────────────────

func (s *weeklyRouteService) Pending(ctx context.Context, date dateutil.Date) ([]dto.WeeklyRouteResponse, error) {
	pending, err := s.pending(ctx, date)
	if err != nil {
		return nil, err
	}
	return toWeeklyRouteResponses(pending), nil
}

func (s *weeklyRouteService) Materialize(ctx context.Context, req *dto.MaterializeRequest) (*dto.MaterializeResponse, error) {
	if !req.DepartureDate.IsZero() && req.DepartureDate.Before(req.Date) {
		return nil, ErrDepartureBeforeDate
	}
	pending, err := s.pending(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	inserted := 0
	for i := range pending {
		w := &pending[i]
		a := &model.RouteAssignment{
			Date:          req.Date,
			DepartureDate: req.DepartureDate,
			RouteNumber:   w.RouteNumber,
			Destination:   w.Destination,
			Category:      model.CategoryNone,
			Note:          w.Note,
		}
		if err := s.repo.RouteAssignment.Create(ctx, a); err != nil {
			if isDuplicate(err) {
				s.logger.Debug("线路已存在，跳过", zap.String("label", w.Label()))
				continue
			}
			s.logger.Error("按模板生成派车失败", zap.String("label", w.Label()), zap.Error(err))
			return nil, err
		}
		inserted++
	}

	s.recorder.AddMaterialized(inserted)
	s.logger.Info("模板派车已生成", zap.String("date", req.Date.String()), zap.Int("inserted", inserted))
	return &dto.MaterializeResponse{Date: req.Date.String(), Inserted: inserted}, nil
}

func (s *weeklyRouteService) Suppress(ctx context.Context, req *dto.SuppressRouteRequest) error {
	if err := requireDate(req.Date); err != nil {
		return err
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return ErrDestinationRequired
	}

	err := suppressLabel(ctx, s.repo, &model.RouteAssignment{
		Date:        req.Date,
		RouteNumber: strings.TrimSpace(req.RouteNumber),
		Destination: destination,
	})
	if err != nil {
		s.logger.Error("屏蔽线路失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *weeklyRouteService) ClearSuppressed(ctx context.Context, date dateutil.Date) (*dto.ClearSuppressedResponse, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}
	n, err := s.repo.SuppressedRoute.DeleteByDate(ctx, date)
	if err != nil {
		s.logger.Error("清除屏蔽线路失败", zap.String("date", date.String()), zap.Error(err))
		return nil, err
	}
	return &dto.ClearSuppressedResponse{Date: date.String(), Deleted: n}, nil
}

// ── 内部辅助方法 ──

// pending 模板按星期匹配后，排除屏蔽线路与已存在的派车
func (s *weeklyRouteService) pending(ctx context.Context, date dateutil.Date) ([]model.WeeklyRoute, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}

	weekday := date.ISOWeekday()
	templates, err := s.repo.WeeklyRoute.List(ctx, &weekday)
	if err != nil {
		s.logger.Error("列出线路模板失败", zap.Error(err))
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}

	suppressed, err := s.repo.SuppressedRoute.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询屏蔽线路失败", zap.Error(err))
		return nil, err
	}
	existing, err := s.repo.RouteAssignment.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询当日派车失败", zap.Error(err))
		return nil, err
	}

	taken := make(map[string]struct{}, len(suppressed)+len(existing))
	for i := range suppressed {
		taken[suppressed[i].Label()] = struct{}{}
	}
	for i := range existing {
		taken[existing[i].Label()] = struct{}{}
	}

	var result []model.WeeklyRoute
	for _, w := range templates {
		if w.RouteNumber == "" {
			continue
		}
		if _, ok := taken[w.Label()]; ok {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func validateWeeklyRoute(w *model.WeeklyRoute) error {
	if w.Weekday < 1 || w.Weekday > 7 {
		return ErrInvalidWeekday
	}
	if w.RouteNumber == "" {
		return ErrRouteNumberRequired
	}
	if w.Destination == "" {
		return ErrDestinationRequired
	}
	return nil
}

func toWeeklyRouteResponse(w *model.WeeklyRoute) dto.WeeklyRouteResponse {
	return dto.WeeklyRouteResponse{
		ID:          w.ID,
		Weekday:     w.Weekday,
		RouteNumber: w.RouteNumber,
		Destination: w.Destination,
		Label:       w.Label(),
		Note:        w.Note,
	}
}

func toWeeklyRouteResponses(list []model.WeeklyRoute) []dto.WeeklyRouteResponse {
	result := make([]dto.WeeklyRouteResponse, 0, len(list))
	for i := range list {
		result = append(result, toWeeklyRouteResponse(&list[i]))
	}
	return result
}
