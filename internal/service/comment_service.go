package service

import (
	"context"
	"time"

	"github.com/d60-Lab/inkwell/internal/model"
	"github.com/d60-Lab/inkwell/internal/repository"
)

type CommentService interface {
	// Add attaches a comment to an existing post; ErrNotFound when the post
	// does not exist.
	Add(ctx context.Context, postID, authorID uint, text string) (*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Add(ctx context.Context, postID, authorID uint, text string) (*model.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, ErrNotFound
	}
	comment := &model.Comment{
		AuthorID: authorID,
		PostID:   &post.ID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
