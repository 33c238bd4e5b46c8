package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
	"jr-escala/backend/pkg/metrics"
)

// ── 封锁台账业务错误 ──

var (
	ErrBlockingEntryNotFound = pkgerrors.NotFound("封锁记录不存在")
	ErrBlockingEntryOwned    = pkgerrors.Validation("该封锁属于派车，请通过派车修改")
	ErrBlockingInvalidPeriod = pkgerrors.Validation("封锁结束日必须晚于开始日")
	ErrBlockingCollaborator  = pkgerrors.Validation("封锁人员不存在")
)

// BlockingService 封锁台账接口
//
// 派车相关方法（CreateBlocks / RemoveBlocks / RescheduleBlocks）接收调用方事务中的
// Repository；tx 为 nil 时使用服务自身的连接。
type BlockingService interface {
	// CreateBlocks 为每个非空人员写入 [start, start+计划天数) 的封锁
	CreateBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64, start dateutil.Date, personIDs []int64, category model.RouteCategory) error
	// RemoveBlocks 删除派车拥有的全部封锁
	RemoveBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64) error
	// RescheduleBlocks release 为 true 时删除，否则将结束日改为 newEnd
	RescheduleBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64, newEnd dateutil.Date, release bool) error

	List(ctx context.Context, req *dto.BlockingEntryListRequest) ([]dto.BlockingEntryResponse, error)
	CreateStandalone(ctx context.Context, req *dto.CreateBlockingEntryRequest) (*dto.BlockingEntryResponse, error)
	DeleteStandalone(ctx context.Context, id int64) error
	// PurgeExpired 删除结束日不晚于今天的封锁
	PurgeExpired(ctx context.Context) (*dto.PurgeExpiredResponse, error)
}

type blockingService struct {
	repo     *repository.Repository
	recorder metrics.Recorder
	logger   *zap.Logger
	loc      *time.Location
	today    func() dateutil.Date
}

// NewBlockingService 创建 BlockingService 实例；loc 为计算“今天”的时区
func NewBlockingService(repo *repository.Repository, recorder metrics.Recorder, loc *time.Location, logger *zap.Logger) BlockingService {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	s := &blockingService{repo: repo, recorder: recorder, logger: logger, loc: loc}
	s.today = func() dateutil.Date { return dateutil.Today(s.loc) }
	return s
}

func (s *blockingService) use(tx *repository.Repository) *repository.Repository {
	if tx != nil {
		return tx
	}
	return s.repo
}

// ────────────────────── 派车封锁 ──────────────────────

func (s *blockingService) CreateBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64, start dateutil.Date, personIDs []int64, category model.RouteCategory) error {
	if start.IsZero() || len(personIDs) == 0 {
		return nil
	}

	end := start.AddDays(category.PlannedDays())
	entries := make([]model.BlockingEntry, 0, len(personIDs))
	for _, pid := range personIDs {
		entries = append(entries, model.BlockingEntry{
			CollaboratorID:    pid,
			StartDate:         start,
			EndDate:           end,
			Reason:            fmt.Sprintf("派车 #%d", assignmentID),
			RouteAssignmentID: model.Int64Ptr(assignmentID),
		})
	}

	if err := s.use(tx).BlockingEntry.CreateBatch(ctx, entries); err != nil {
		s.logger.Error("创建派车封锁失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return err
	}
	s.recorder.IncBlockOperation("create")
	return nil
}

func (s *blockingService) RemoveBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64) error {
	if _, err := s.use(tx).BlockingEntry.DeleteByAssignment(ctx, assignmentID); err != nil {
		s.logger.Error("删除派车封锁失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return err
	}
	s.recorder.IncBlockOperation("remove")
	return nil
}

func (s *blockingService) RescheduleBlocks(ctx context.Context, tx *repository.Repository, assignmentID int64, newEnd dateutil.Date, release bool) error {
	repo := s.use(tx)
	if release {
		if _, err := repo.BlockingEntry.DeleteByAssignment(ctx, assignmentID); err != nil {
			s.logger.Error("释放派车封锁失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
			return err
		}
		s.recorder.IncBlockOperation("release")
		return nil
	}

	if _, err := repo.BlockingEntry.UpdateEndByAssignment(ctx, assignmentID, newEnd); err != nil {
		s.logger.Error("调整派车封锁失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return err
	}
	s.recorder.IncBlockOperation("reschedule")
	return nil
}

// ────────────────────── 独立封锁 ──────────────────────

func (s *blockingService) List(ctx context.Context, req *dto.BlockingEntryListRequest) ([]dto.BlockingEntryResponse, error) {
	list, err := s.repo.BlockingEntry.List(ctx, repository.BlockingEntryFilter{
		CollaboratorID: req.CollaboratorID,
		StandaloneOnly: req.StandaloneOnly,
	})
	if err != nil {
		s.logger.Error("列出封锁失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BlockingEntryResponse, 0, len(list))
	for i := range list {
		result = append(result, toBlockingEntryResponse(&list[i]))
	}
	return result, nil
}

func (s *blockingService) CreateStandalone(ctx context.Context, req *dto.CreateBlockingEntryRequest) (*dto.BlockingEntryResponse, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, ErrDateRequired
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrBlockingInvalidPeriod
	}
	if _, err := s.repo.Collaborator.GetByID(ctx, req.CollaboratorID); err != nil {
		if isNotFound(err) {
			return nil, ErrBlockingCollaborator
		}
		s.logger.Error("查询人员失败", zap.Int64("id", req.CollaboratorID), zap.Error(err))
		return nil, err
	}

	entry := model.BlockingEntry{
		CollaboratorID: req.CollaboratorID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Reason:         req.Reason,
	}
	entries := []model.BlockingEntry{entry}
	if err := s.repo.BlockingEntry.CreateBatch(ctx, entries); err != nil {
		s.logger.Error("创建独立封锁失败", zap.Error(err))
		return nil, err
	}
	s.recorder.IncBlockOperation("create")

	resp := toBlockingEntryResponse(&entries[0])
	return &resp, nil
}

func (s *blockingService) DeleteStandalone(ctx context.Context, id int64) error {
	entry, err := s.repo.BlockingEntry.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrBlockingEntryNotFound
		}
		s.logger.Error("查询封锁失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !entry.Standalone() {
		return ErrBlockingEntryOwned
	}

	if err := s.repo.BlockingEntry.Delete(ctx, id); err != nil {
		s.logger.Error("删除封锁失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.recorder.IncBlockOperation("remove")
	return nil
}

func (s *blockingService) PurgeExpired(ctx context.Context) (*dto.PurgeExpiredResponse, error) {
	today := s.today()
	n, err := s.repo.BlockingEntry.DeleteExpired(ctx, today)
	if err != nil {
		s.logger.Error("清理过期封锁失败", zap.Error(err))
		return nil, err
	}
	s.recorder.IncBlockOperation("purge")
	s.logger.Info("过期封锁已清理", zap.String("today", today.String()), zap.Int64("deleted", n))
	return &dto.PurgeExpiredResponse{Today: today.String(), Deleted: n}, nil
}

// ── 内部辅助方法 ──

func toBlockingEntryResponse(b *model.BlockingEntry) dto.BlockingEntryResponse {
	return dto.BlockingEntryResponse{
		ID:                b.ID,
		CollaboratorID:    b.CollaboratorID,
		StartDate:         b.StartDate.String(),
		EndDate:           b.EndDate.String(),
		Reason:            b.Reason,
		RouteAssignmentID: b.RouteAssignmentID,
	}
}
