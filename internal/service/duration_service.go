package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 行程天数业务错误 ──

var (
	ErrAssignmentNotFound = pkgerrors.NotFound("派车记录不存在")
	ErrInvalidTripDays    = pkgerrors.Validation("行程天数必须在 -1 到 60 之间")
)

const (
	maxTripDays = 60
	releaseNote = "立即释放"
)

// DurationService 行程天数接口
type DurationService interface {
	// CurrentEffectiveDuration 最新调整的天数，无调整时为类别计划天数
	CurrentEffectiveDuration(ctx context.Context, assignmentID int64) (int, error)
	GetDuration(ctx context.Context, assignmentID int64) (*dto.DurationResponse, error)
	// RegisterAdjustment 追加调整并把派车封锁的结束日改为 出发日+newDays
	RegisterAdjustment(ctx context.Context, assignmentID int64, newDays int, note string) (*dto.AdjustmentResponse, error)
	// ReleaseNow 追加 0 天调整并删除派车封锁
	ReleaseNow(ctx context.Context, assignmentID int64) (*dto.AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, assignmentID int64) (*dto.AdjustmentListResponse, error)
}

type durationService struct {
	repo     *repository.Repository
	blocking BlockingService
	logger   *zap.Logger
	now      func() time.Time
}

// NewDurationService 创建 DurationService 实例
func NewDurationService(repo *repository.Repository, blocking BlockingService, logger *zap.Logger) DurationService {
	return &durationService{repo: repo, blocking: blocking, logger: logger, now: time.Now}
}

func (s *durationService) getAssignment(ctx context.Context, repo *repository.Repository, id int64) (*model.RouteAssignment, error) {
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

// currentDays 返回当前有效天数以及是否存在调整
func (s *durationService) currentDays(ctx context.Context, repo *repository.Repository, a *model.RouteAssignment) (int, bool, error) {
	latest, err := repo.DurationAdjustment.Latest(ctx, a.ID)
	if err != nil {
		if isNotFound(err) {
			return a.Category.PlannedDays(), false, nil
		}
		s.logger.Error("查询行程调整失败", zap.Int64("assignment_id", a.ID), zap.Error(err))
		return 0, false, err
	}
	return latest.NewDays, true, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *durationService) CurrentEffectiveDuration(ctx context.Context, assignmentID int64) (int, error) {
	a, err := s.getAssignment(ctx, s.repo, assignmentID)
	if err != nil {
		return 0, err
	}
	days, _, err := s.currentDays(ctx, s.repo, a)
	return days, err
}

func (s *durationService) GetDuration(ctx context.Context, assignmentID int64) (*dto.DurationResponse, error) {
	a, err := s.getAssignment(ctx, s.repo, assignmentID)
	if err != nil {
		return nil, err
	}
	days, adjusted, err := s.currentDays(ctx, s.repo, a)
	if err != nil {
		return nil, err
	}
	return &dto.DurationResponse{
		RouteAssignmentID: a.ID,
		PlannedDays:       a.Category.PlannedDays(),
		EffectiveDays:     days,
		Adjusted:          adjusted,
	}, nil
}

func (s *durationService) ListAdjustments(ctx context.Context, assignmentID int64) (*dto.AdjustmentListResponse, error) {
	a, err := s.getAssignment(ctx, s.repo, assignmentID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.DurationAdjustment.ListByAssignment(ctx, a.ID)
	if err != nil {
		s.logger.Error("列出行程调整失败", zap.Int64("assignment_id", a.ID), zap.Error(err))
		return nil, err
	}

	return &dto.AdjustmentListResponse{
		RouteAssignmentID: a.ID,
		Summary:           summarizeAdjustments(a.Category.PlannedDays(), list),
		Adjustments:       toAdjustmentResponses(list),
	}, nil
}

// ────────────────────── 调整 ──────────────────────

func (s *durationService) RegisterAdjustment(ctx context.Context, assignmentID int64, newDays int, note string) (*dto.AdjustmentResponse, error) {
	if newDays < -1 || newDays > maxTripDays {
		return nil, ErrInvalidTripDays
	}
	return s.appendAdjustment(ctx, assignmentID, newDays, note, false)
}

func (s *durationService) ReleaseNow(ctx context.Context, assignmentID int64) (*dto.AdjustmentResponse, error) {
	return s.appendAdjustment(ctx, assignmentID, 0, releaseNote, true)
}

func (s *durationService) appendAdjustment(ctx context.Context, assignmentID int64, newDays int, note string, release bool) (*dto.AdjustmentResponse, error) {
	var adj *model.DurationAdjustment

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := s.getAssignment(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		current, _, err := s.currentDays(ctx, tx, a)
		if err != nil {
			return err
		}

		adj = &model.DurationAdjustment{
			RouteAssignmentID: a.ID,
			AdjustedAt:        s.now(),
			PreviousDays:      current,
			NewDays:           newDays,
			Note:              note,
		}
		if err := tx.DurationAdjustment.Create(ctx, adj); err != nil {
			s.logger.Error("写入行程调整失败", zap.Int64("assignment_id", a.ID), zap.Error(err))
			return err
		}

		newEnd := a.EffectiveDeparture().AddDays(newDays)
		return s.blocking.RescheduleBlocks(ctx, tx, a.ID, newEnd, release)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("行程天数已调整",
		zap.Int64("assignment_id", assignmentID),
		zap.Int("previous_days", adj.PreviousDays),
		zap.Int("new_days", adj.NewDays),
		zap.Bool("release", release),
	)
	resp := toAdjustmentResponse(adj)
	return &resp, nil
}

// ── 内部辅助方法 ──

func daysText(n int) string {
	return fmt.Sprintf("%d 天", n)
}

// summarizeAdjustments 以最后一次调整描述行程变化
func summarizeAdjustments(planned int, list []model.DurationAdjustment) string {
	if len(list) == 0 {
		return "计划 " + daysText(planned)
	}

	summary := ""
	previous := planned
	for _, adj := range list {
		switch {
		case adj.NewDays > previous:
			summary = fmt.Sprintf("原 %s，延长 +%d 至 %s", daysText(previous), adj.NewDays-previous, daysText(adj.NewDays))
		case adj.NewDays < previous:
			summary = fmt.Sprintf("原 %s，提前至 %s 返回", daysText(previous), daysText(adj.NewDays))
		default:
			summary = fmt.Sprintf("已调整，保持 %s", daysText(adj.NewDays))
		}
		previous = adj.NewDays
	}
	return summary
}

func toAdjustmentResponse(adj *model.DurationAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:           adj.ID,
		AdjustedAt:   adj.AdjustedAt.Format("2006-01-02 15:04"),
		PreviousDays: adj.PreviousDays,
		NewDays:      adj.NewDays,
		Note:         adj.Note,
	}
}

func toAdjustmentResponses(list []model.DurationAdjustment) []dto.AdjustmentResponse {
	result := make([]dto.AdjustmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toAdjustmentResponse(&list[i]))
	}
	return result
}
