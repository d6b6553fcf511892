package service

import (
	"context"

	"github.com/d60-Lab/inkwell/internal/repository"
)

// RelationshipService owns the follow graph rules: no self-follow, duplicate
// follows are a no-op, unfollow of a missing relation is an error.
type RelationshipService interface {
	Follow(ctx context.Context, userID, authorID uint) error
	Unfollow(ctx context.Context, userID, authorID uint) error
	Following(ctx context.Context, userID, authorID uint) (bool, error)
	HasFollowing(ctx context.Context, userID uint) (bool, error)
}

type relationshipService struct {
	follows repository.FollowRepository
}

func NewRelationshipService(follows repository.FollowRepository) RelationshipService {
	return &relationshipService{follows: follows}
}

func (s *relationshipService) Follow(ctx context.Context, userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	return s.follows.Create(ctx, userID, authorID)
}

func (s *relationshipService) Unfollow(ctx context.Context, userID, authorID uint) error {
	deleted, err := s.follows.Delete(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}
	return nil
}

func (s *relationshipService) Following(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.follows.Exists(ctx, userID, authorID)
}

func (s *relationshipService) HasFollowing(ctx context.Context, userID uint) (bool, error) {
	return s.follows.HasAny(ctx, userID)
}
