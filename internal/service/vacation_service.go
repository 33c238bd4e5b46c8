package service

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 假期业务错误 ──

var (
	ErrVacationNotFound = pkgerrors.NotFound("假期记录不存在")
	ErrVacationPeriod   = pkgerrors.Validation("假期结束日不能早于开始日")
	ErrICSParseFailed   = pkgerrors.Validation("ICS 文件解析失败")
	ErrICSNoValidEvents = pkgerrors.Validation("ICS 文件中没有可导入的假期")
)

// VacationService 假期接口
type VacationService interface {
	Create(ctx context.Context, req *dto.SaveVacationRequest) (*dto.VacationResponse, error)
	List(ctx context.Context, req *dto.VacationListRequest) ([]dto.VacationResponse, error)
	Update(ctx context.Context, id int64, req *dto.SaveVacationRequest) (*dto.VacationResponse, error)
	Delete(ctx context.Context, id int64) error
	// ImportICS 从 ICS 导入某人的假期；无效或冲突的事件跳过并计数
	ImportICS(ctx context.Context, collaboratorID int64, reader io.Reader) (*dto.ImportVacationsResponse, error)
}

type vacationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	loc          *time.Location
	logger       *zap.Logger
}

// NewVacationService 创建 VacationService 实例；loc 用于换算 ICS 中的带时区时间
func NewVacationService(repo *repository.Repository, availability AvailabilityService, loc *time.Location, logger *zap.Logger) VacationService {
	return &vacationService{repo: repo, availability: availability, loc: loc, logger: logger}
}

// ────────────────────── CRUD ──────────────────────

func (s *vacationService) Create(ctx context.Context, req *dto.SaveVacationRequest) (*dto.VacationResponse, error) {
	v := &model.Vacation{}
	if err := s.prepare(ctx, v, req, nil); err != nil {
		return nil, err
	}

	if err := s.repo.Vacation.Create(ctx, v); err != nil {
		s.logger.Error("创建假期失败", zap.Error(err))
		return nil, err
	}
	resp := toVacationResponse(v)
	return &resp, nil
}

func (s *vacationService) List(ctx context.Context, req *dto.VacationListRequest) ([]dto.VacationResponse, error) {
	list, err := s.repo.Vacation.List(ctx, req.CollaboratorID)
	if err != nil {
		s.logger.Error("列出假期失败", zap.Error(err))
		return nil, err
	}
	return toVacationResponses(list), nil
}

func (s *vacationService) Update(ctx context.Context, id int64, req *dto.SaveVacationRequest) (*dto.VacationResponse, error) {
	v, err := s.repo.Vacation.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		s.logger.Error("查询假期失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.prepare(ctx, v, req, &IgnoreKey{Kind: IgnoreVacation, ID: id}); err != nil {
		return nil, err
	}
	if err := s.repo.Vacation.Update(ctx, v); err != nil {
		s.logger.Error("更新假期失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toVacationResponse(v)
	return &resp, nil
}

func (s *vacationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Vacation.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrVacationNotFound
		}
		return err
	}
	if err := s.repo.Vacation.Delete(ctx, id); err != nil {
		s.logger.Error("删除假期失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ICS 导入 ──────────────────────

func (s *vacationService) ImportICS(ctx context.Context, collaboratorID int64, reader io.Reader) (*dto.ImportVacationsResponse, error) {
	if err := checkCrewMember(ctx, s.repo, &collaboratorID, ""); err != nil {
		return nil, err
	}

	events, skipped, err := parseVacationEvents(reader, s.loc)
	if err != nil {
		s.logger.Warn("ICS 解析失败", zap.Error(err))
		return nil, ErrICSParseFailed
	}

	crew := Crew{PersonIDs: []int64{collaboratorID}}
	list := make([]model.Vacation, 0, len(events))
	for _, evt := range events {
		if err := s.availability.EnsureAvailable(ctx, []dateutil.Date{evt.Start}, nil, crew); err != nil {
			if pkgerrors.IsConflict(err) {
				skipped++
				continue
			}
			return nil, err
		}
		list = append(list, model.Vacation{
			CollaboratorID: collaboratorID,
			StartDate:      evt.Start,
			EndDate:        evt.End,
			Note:           evt.Note,
		})
	}
	if len(list) == 0 {
		return nil, ErrICSNoValidEvents
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Vacation.CreateBatch(ctx, list)
	})
	if err != nil {
		s.logger.Error("导入假期失败", zap.Int64("collaborator_id", collaboratorID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("ICS 假期已导入",
		zap.Int64("collaborator_id", collaboratorID),
		zap.Int("imported", len(list)),
		zap.Int("skipped", skipped),
	)
	return &dto.ImportVacationsResponse{
		Imported:  len(list),
		Skipped:   skipped,
		Vacations: toVacationResponses(list),
	}, nil
}

// ── 内部辅助方法 ──

// prepare 校验请求并写入 v；开始日需对该人员可用（忽略自身）
func (s *vacationService) prepare(ctx context.Context, v *model.Vacation, req *dto.SaveVacationRequest, ignore *IgnoreKey) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return ErrDateRequired
	}
	if req.EndDate.Before(req.StartDate) {
		return ErrVacationPeriod
	}
	if err := checkCrewMember(ctx, s.repo, &req.CollaboratorID, ""); err != nil {
		return err
	}

	crew := Crew{PersonIDs: []int64{req.CollaboratorID}}
	if err := s.availability.EnsureAvailable(ctx, []dateutil.Date{req.StartDate}, ignore, crew); err != nil {
		return err
	}

	v.CollaboratorID = req.CollaboratorID
	v.StartDate = req.StartDate
	v.EndDate = req.EndDate
	v.Note = strings.TrimSpace(req.Note)
	return nil
}

func toVacationResponse(v *model.Vacation) dto.VacationResponse {
	return dto.VacationResponse{
		ID:             v.ID,
		CollaboratorID: v.CollaboratorID,
		StartDate:      v.StartDate.String(),
		EndDate:        v.EndDate.String(),
		Note:           v.Note,
	}
}

func toVacationResponses(list []model.Vacation) []dto.VacationResponse {
	result := make([]dto.VacationResponse, 0, len(list))
	for i := range list {
		result = append(result, toVacationResponse(&list[i]))
	}
	return result
}
