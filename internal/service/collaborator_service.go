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

// ── 人员模块业务错误 ──

var (
	ErrCollaboratorNotFound = pkgerrors.NotFound("人员不存在")
	ErrCollaboratorName     = pkgerrors.Validation("姓名不能为空")
	ErrInvalidRole          = pkgerrors.Validation("角色必须为 driver 或 helper")
)

// CollaboratorService 人员接口
type CollaboratorService interface {
	Create(ctx context.Context, req *dto.CreateCollaboratorRequest) (*dto.CollaboratorResponse, error)
	Get(ctx context.Context, id int64) (*dto.CollaboratorResponse, error)
	List(ctx context.Context, req *dto.CollaboratorListRequest) ([]dto.CollaboratorResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error)
	Deactivate(ctx context.Context, id int64) error
	// Delete 级联删除休息日、假期、封锁，并清除派车 / 值班 / 进厂中的引用
	Delete(ctx context.Context, id int64) error
	// ListAvailable 指定日期可担任 role 的启用人员；helper 列表包含可兼任的司机
	ListAvailable(ctx context.Context, role string, date dateutil.Date, ignore *IgnoreKey) ([]dto.CollaboratorResponse, error)
}

type collaboratorService struct {
	repo         *repository.Repository
	availability AvailabilityService
	logger       *zap.Logger
}

// NewCollaboratorService 创建 CollaboratorService 实例
func NewCollaboratorService(repo *repository.Repository, availability AvailabilityService, logger *zap.Logger) CollaboratorService {
	return &collaboratorService{repo: repo, availability: availability, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *collaboratorService) Create(ctx context.Context, req *dto.CreateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	c := &model.Collaborator{
		Name:      strings.TrimSpace(req.Name),
		Role:      req.Role,
		CanAssist: req.CanAssist,
		Note:      strings.TrimSpace(req.Note),
		Active:    true,
	}
	if err := validateCollaborator(c); err != nil {
		return nil, err
	}

	if err := s.repo.Collaborator.Create(ctx, c); err != nil {
		s.logger.Error("创建人员失败", zap.Error(err))
		return nil, err
	}
	resp := toCollaboratorResponse(c, c.Role)
	return &resp, nil
}

// ────────────────────── Query ──────────────────────

func (s *collaboratorService) Get(ctx context.Context, id int64) (*dto.CollaboratorResponse, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCollaboratorResponse(c, c.Role)
	return &resp, nil
}

func (s *collaboratorService) List(ctx context.Context, req *dto.CollaboratorListRequest) ([]dto.CollaboratorResponse, error) {
	list, err := s.repo.Collaborator.List(ctx, repository.CollaboratorFilter{
		Role:       req.Role,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CollaboratorResponse, 0, len(list))
	for i := range list {
		result = append(result, toCollaboratorResponse(&list[i], list[i].Role))
	}
	return result, nil
}

func (s *collaboratorService) ListAvailable(ctx context.Context, role string, date dateutil.Date, ignore *IgnoreKey) ([]dto.CollaboratorResponse, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	u, err := s.availability.Check(ctx, date, ignore)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Collaborator.List(ctx, repository.CollaboratorFilter{ActiveOnly: true})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CollaboratorResponse, 0, len(list))
	for i := range list {
		c := &list[i]
		if !c.CanServeAs(role) {
			continue
		}
		if role == model.RoleDriver && u.DriverUnavailable(c.ID) {
			continue
		}
		if role == model.RoleHelper && u.HelperUnavailable(c.ID) {
			continue
		}
		result = append(result, toCollaboratorResponse(c, role))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *collaboratorService) Update(ctx context.Context, id int64, req *dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		c.Role = *req.Role
	}
	if req.CanAssist != nil {
		c.CanAssist = *req.CanAssist
	}
	if req.Note != nil {
		c.Note = strings.TrimSpace(*req.Note)
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := validateCollaborator(c); err != nil {
		return nil, err
	}

	if err := s.repo.Collaborator.Update(ctx, c); err != nil {
		s.logger.Error("更新人员失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCollaboratorResponse(c, c.Role)
	return &resp, nil
}

func (s *collaboratorService) Deactivate(ctx context.Context, id int64) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !c.Active {
		return nil
	}
	c.Active = false
	if err := s.repo.Collaborator.Update(ctx, c); err != nil {
		s.logger.Error("停用人员失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("人员已停用", zap.Int64("id", id))
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *collaboratorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.DayOff.DeleteByCollaborator(ctx, id); err != nil {
			return err
		}
		if err := tx.Vacation.DeleteByCollaborator(ctx, id); err != nil {
			return err
		}
		if err := tx.BlockingEntry.DeleteByCollaborator(ctx, id); err != nil {
			return err
		}
		if err := tx.RouteAssignment.ClearCollaborator(ctx, id); err != nil {
			return err
		}
		if err := tx.CDDuty.ClearCollaborator(ctx, id); err != nil {
			return err
		}
		if err := tx.WorkshopVisit.ClearDriver(ctx, id); err != nil {
			return err
		}
		return tx.Collaborator.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除人员失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("人员已删除", zap.Int64("id", id))
	return nil
}

// ── 内部辅助方法 ──

func (s *collaboratorService) get(ctx context.Context, id int64) (*model.Collaborator, error) {
	c, err := s.repo.Collaborator.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCollaboratorNotFound
		}
		s.logger.Error("查询人员失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func validateCollaborator(c *model.Collaborator) error {
	if c.Name == "" {
		return ErrCollaboratorName
	}
	if !model.ValidRole(c.Role) {
		return ErrInvalidRole
	}
	return nil
}

func toCollaboratorResponse(c *model.Collaborator, asRole string) dto.CollaboratorResponse {
	return dto.CollaboratorResponse{
		ID:          c.ID,
		Name:        c.Name,
		DisplayName: c.DisplayName(asRole),
		Role:        c.Role,
		CanAssist:   c.CanAssist,
		Note:        c.Note,
		Active:      c.Active,
	}
}
