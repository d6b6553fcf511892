package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/inkwell/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// Update persists the mutable fields only; pub_date and author_id never change.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.Post, int64, error)
	ListByGroup(ctx context.Context, groupID uint, offset, limit int) ([]model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.Post, int64, error)
	// ListByFollowed returns posts whose author is followed by userID.
	ListByFollowed(ctx context.Context, userID uint, offset, limit int) ([]model.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]any{"text": post.Text, "group_id": post.GroupID, "image": post.Image}).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListAll(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.Post{}), offset, limit)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, offset, limit int) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("group_id = ?", groupID)
	return r.list(ctx, q, offset, limit)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID)
	return r.list(ctx, q, offset, limit)
}

func (r *postRepository) ListByFollowed(ctx context.Context, userID uint, offset, limit int) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id IN (?)", r.db.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", userID))
	return r.list(ctx, q, offset, limit)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

// list applies the shared count + windowed fetch, newest first.
func (r *postRepository) list(ctx context.Context, q *gorm.DB, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []model.Post
	err := q.
		Preload("Author").Preload("Group").
		Order("pub_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}
