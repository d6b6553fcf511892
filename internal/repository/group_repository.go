package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/inkwell/internal/model"
)

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetByID(ctx context.Context, id uint) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	// Delete exists for administrative tooling; posts in the group are kept
	// with group_id set to NULL by the schema's ON DELETE action.
	Delete(ctx context.Context, id uint) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}
