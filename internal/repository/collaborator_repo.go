package repository

import (
	"context"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
)

// CollaboratorFilter 人员列表过滤条件
type CollaboratorFilter struct {
	Role       string // 空串表示不限
	ActiveOnly bool
}

// CollaboratorRepository 人员数据访问接口
type CollaboratorRepository interface {
	Create(ctx context.Context, c *model.Collaborator) error
	GetByID(ctx context.Context, id int64) (*model.Collaborator, error)
	List(ctx context.Context, filter CollaboratorFilter) ([]model.Collaborator, error)
	// ListByIDs 按 ID 批量查询，返回 id → 人员
	ListByIDs(ctx context.Context, ids []int64) (map[int64]model.Collaborator, error)
	Update(ctx context.Context, c *model.Collaborator) error
	Delete(ctx context.Context, id int64) error
}

type collaboratorRepo struct {
	db *gorm.DB
}

// NewCollaboratorRepo 创建 CollaboratorRepository 实例
func NewCollaboratorRepo(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepo{db: db}
}

func (r *collaboratorRepo) Create(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collaboratorRepo) GetByID(ctx context.Context, id int64) (*model.Collaborator, error) {
	var c model.Collaborator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collaboratorRepo) List(ctx context.Context, filter CollaboratorFilter) ([]model.Collaborator, error) {
	var list []model.Collaborator
	db := r.db.WithContext(ctx)

	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.ActiveOnly {
		db = db.Where("active = ?", true)
	}

	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *collaboratorRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]model.Collaborator, error) {
	result := make(map[int64]model.Collaborator, len(ids))
	for _, chunk := range chunkIDs(ids, 0) {
		var list []model.Collaborator
		if err := r.db.WithContext(ctx).Where("id IN ?", chunk).Find(&list).Error; err != nil {
			return nil, err
		}
		for _, c := range list {
			result[c.ID] = c
		}
	}
	return result, nil
}

func (r *collaboratorRepo) Update(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *collaboratorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Collaborator{}).Error
}
