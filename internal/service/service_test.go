package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/inkwell/internal/model"
	"github.com/d60-Lab/inkwell/internal/repository"
)

type fixture struct {
	db    *gorm.DB
	posts PostService
	rels  RelationshipService
	comm  CommentService
	users UserService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	return &fixture{
		db:    db,
		posts: NewPostService(postRepo, groupRepo, userRepo, commentRepo),
		rels:  NewRelationshipService(followRepo),
		comm:  NewCommentService(commentRepo, postRepo),
		users: NewUserService(userRepo),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, username+"@example.com", "secret")
	require.NoError(t, err)
	return u
}

func (f *fixture) group(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: title, Slug: slug}
	require.NoError(t, f.db.Create(g).Error)
	return g
}

func TestCreatePost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	g := f.group(t, "Test group", "test-slug")

	res, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "hello", GroupID: &g.ID})
	require.NoError(t, err)
	require.False(t, res.Rejected)
	require.NotNil(t, res.Post)

	got, err := f.posts.Get(ctx, res.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, alice.ID, got.AuthorID)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, g.ID, *got.GroupID)
	assert.False(t, got.PubDate.IsZero())
}

func TestUpdatePostAuthorization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	res, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "original"})
	require.NoError(t, err)
	id := res.Post.ID
	origDate := res.Post.PubDate

	_, err = f.posts.Update(ctx, id, bob.ID, PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)
	got, err := f.posts.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text, "non-author edit must persist nothing")

	updated, err := f.posts.Update(ctx, id, alice.ID, PostInput{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	got, err = f.posts.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.AuthorID)
	assert.WithinDuration(t, origDate, got.PubDate, time.Second)
}

func TestDeletePostAuthorization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	res, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "keep me"})
	require.NoError(t, err)

	_, err = f.posts.Delete(ctx, res.Post.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)
	_, err = f.posts.Get(ctx, res.Post.ID)
	require.NoError(t, err)

	_, err = f.posts.Delete(ctx, res.Post.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.posts.Get(ctx, res.Post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupFeedPagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	g := f.group(t, "Test group", "test-slug")

	for i := 0; i < 13; i++ {
		_, err := f.posts.Create(ctx, alice.ID, PostInput{Text: fmt.Sprintf("post %d", i), GroupID: &g.ID})
		require.NoError(t, err)
	}

	group, feed, err := f.posts.GroupFeed(ctx, "test-slug", "1")
	require.NoError(t, err)
	assert.Equal(t, "Test group", group.Title)
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, 2, feed.Window.TotalPages)

	_, feed, err = f.posts.GroupFeed(ctx, "test-slug", "2")
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 3)

	// beyond the last page clamps to the last page
	_, feed, err = f.posts.GroupFeed(ctx, "test-slug", "9")
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 3)
	assert.Equal(t, 2, feed.Window.Number)

	_, _, err = f.posts.GroupFeed(ctx, "no-such-slug", "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileFeed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	_, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "alice's"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, bob.ID, PostInput{Text: "bob's"})
	require.NoError(t, err)

	author, feed, err := f.posts.ProfileFeed(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, author.ID)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "alice's", feed.Posts[0].Text)

	_, _, err = f.posts.ProfileFeed(ctx, "nobody", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowFeedLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")

	require.NoError(t, f.rels.Follow(ctx, a.ID, b.ID))
	_, err := f.posts.Create(ctx, b.ID, PostInput{Text: "from b"})
	require.NoError(t, err)

	feed, err := f.posts.FollowFeed(ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from b", feed.Posts[0].Text)

	require.NoError(t, f.rels.Unfollow(ctx, a.ID, b.ID))
	feed, err = f.posts.FollowFeed(ctx, a.ID, "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}

func TestFollowRules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")

	assert.ErrorIs(t, f.rels.Follow(ctx, a.ID, a.ID), ErrSelfFollow)

	require.NoError(t, f.rels.Follow(ctx, a.ID, b.ID))
	require.NoError(t, f.rels.Follow(ctx, a.ID, b.ID), "duplicate follow is a no-op")
	var cnt int64
	f.db.Model(&model.Follow{}).Count(&cnt)
	assert.Equal(t, int64(1), cnt)

	has, err := f.rels.HasFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, has)

	assert.ErrorIs(t, f.rels.Unfollow(ctx, b.ID, a.ID), ErrNotFollowing)
}

func TestCommentsOnPost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	res, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "post"})
	require.NoError(t, err)

	_, err = f.comm.Add(ctx, res.Post.ID, alice.ID, "first!")
	require.NoError(t, err)

	detail, err := f.posts.Detail(ctx, res.Post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "first!", detail.Comments[0].Text)
	assert.Equal(t, int64(1), detail.AuthorPosts)

	_, err = f.comm.Add(ctx, 9999, alice.ID, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.user(t, "alice")

	u, err := f.users.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = f.users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
