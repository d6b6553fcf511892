package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/inkwell/internal/model"
	"github.com/d60-Lab/inkwell/internal/pagination"
	"github.com/d60-Lab/inkwell/internal/repository"
)

// PostInput carries the mutable fields of a post submission. Validation of
// the raw request belongs to the forms package; the service only persists.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   string
}

// CreateResult distinguishes a persisted post from a store-level rejection
// (unique constraint violation) so handlers can surface the failure instead
// of silently dropping the submission.
type CreateResult struct {
	Post     *model.Post
	Rejected bool
	Reason   string
}

// Feed is one page of posts together with its pagination window.
type Feed struct {
	Posts  []model.Post
	Window pagination.Window
}

// PostDetail is everything the detail page needs in one fetch.
type PostDetail struct {
	Post        *model.Post
	Comments    []model.Comment
	AuthorPosts int64
}

type PostService interface {
	Create(ctx context.Context, authorID uint, in PostInput) (CreateResult, error)
	Update(ctx context.Context, postID, editorID uint, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, postID, requesterID uint) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Detail(ctx context.Context, id uint) (*PostDetail, error)
	Index(ctx context.Context, page string) (Feed, error)
	GroupFeed(ctx context.Context, slug, page string) (*model.Group, Feed, error)
	ProfileFeed(ctx context.Context, username, page string) (*model.User, Feed, error)
	FollowFeed(ctx context.Context, userID uint, page string) (Feed, error)
}

type postService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	comments repository.CommentRepository
}

func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
) PostService {
	return &postService{posts: posts, groups: groups, users: users, comments: comments}
}

func (s *postService) Create(ctx context.Context, authorID uint, in PostInput) (CreateResult, error) {
	post := &model.Post{
		Text:     in.Text,
		PubDate:  time.Now(),
		AuthorID: authorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return CreateResult{Rejected: true, Reason: "duplicate post"}, nil
		}
		return CreateResult{}, err
	}
	return CreateResult{Post: post}, nil
}

func (s *postService) Update(ctx context.Context, postID, editorID uint, in PostInput) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return post, ErrNotAuthor
	}
	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, postID, requesterID uint) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return post, ErrNotAuthor
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Detail(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPosts: count}, nil
}

func (s *postService) Index(ctx context.Context, page string) (Feed, error) {
	return s.feed(ctx, page, func(w pagination.Window) ([]model.Post, int64, error) {
		return s.posts.ListAll(ctx, w.Offset, w.Limit)
	}, func() (int64, error) {
		_, total, err := s.posts.ListAll(ctx, 0, 0)
		return total, err
	})
}

func (s *postService) GroupFeed(ctx context.Context, slug, page string) (*model.Group, Feed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Feed{}, ErrNotFound
		}
		return nil, Feed{}, err
	}
	feed, err := s.feed(ctx, page, func(w pagination.Window) ([]model.Post, int64, error) {
		return s.posts.ListByGroup(ctx, group.ID, w.Offset, w.Limit)
	}, func() (int64, error) {
		_, total, err := s.posts.ListByGroup(ctx, group.ID, 0, 0)
		return total, err
	})
	return group, feed, err
}

func (s *postService) ProfileFeed(ctx context.Context, username, page string) (*model.User, Feed, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Feed{}, ErrNotFound
		}
		return nil, Feed{}, err
	}
	feed, err := s.feed(ctx, page, func(w pagination.Window) ([]model.Post, int64, error) {
		return s.posts.ListByAuthor(ctx, user.ID, w.Offset, w.Limit)
	}, func() (int64, error) {
		_, total, err := s.posts.ListByAuthor(ctx, user.ID, 0, 0)
		return total, err
	})
	return user, feed, err
}

func (s *postService) FollowFeed(ctx context.Context, userID uint, page string) (Feed, error) {
	return s.feed(ctx, page, func(w pagination.Window) ([]model.Post, int64, error) {
		return s.posts.ListByFollowed(ctx, userID, w.Offset, w.Limit)
	}, func() (int64, error) {
		_, total, err := s.posts.ListByFollowed(ctx, userID, 0, 0)
		return total, err
	})
}

// feed counts first so the requested page number can be clamped, then
// fetches the clamped window.
func (s *postService) feed(
	ctx context.Context,
	page string,
	fetch func(pagination.Window) ([]model.Post, int64, error),
	count func() (int64, error),
) (Feed, error) {
	total, err := count()
	if err != nil {
		return Feed{}, err
	}
	w := pagination.FromQuery(total, page)
	posts, _, err := fetch(w)
	if err != nil {
		return Feed{}, err
	}
	return Feed{Posts: posts, Window: w}, nil
}
