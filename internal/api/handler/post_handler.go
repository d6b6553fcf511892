package handler

import (
	"errors"
	"fmt"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/inkwell/internal/api/middleware"
	"github.com/d60-Lab/inkwell/internal/forms"
	"github.com/d60-Lab/inkwell/internal/service"
	"github.com/d60-Lab/inkwell/pkg/logger"
)

// Index lists all posts, newest first. The rendered page is cached whole by
// the CachePage middleware; staleness within the TTL is accepted.
func (h *Handler) Index(c *gin.Context) {
	feed, err := h.posts.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	// UI affordance only: whether the viewer follows anyone at all.
	following := false
	if user, ok := middleware.UserFrom(c); ok {
		following, _ = h.rels.HasFollowing(c.Request.Context(), user.ID)
	}
	h.html(c, http.StatusOK, "index.html", gin.H{
		"Title":     "Latest updates",
		"Feed":      feed,
		"Following": following,
	})
}

// GroupPosts lists the posts of one group resolved by slug.
func (h *Handler) GroupPosts(c *gin.Context) {
	group, feed, err := h.posts.GroupFeed(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	h.html(c, http.StatusOK, "group_list.html", gin.H{
		"Group": group,
		"Feed":  feed,
	})
}

// Profile lists one author's posts and whether the viewer follows them.
func (h *Handler) Profile(c *gin.Context) {
	author, feed, err := h.posts.ProfileFeed(c.Request.Context(), c.Param("username"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	following := false
	if user, ok := middleware.UserFrom(c); ok {
		following, _ = h.rels.Following(c.Request.Context(), user.ID, author.ID)
	}
	h.html(c, http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Feed":      feed,
		"Following": following,
	})
}

// PostDetail shows one post with its comments and an empty comment form.
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	detail, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	h.html(c, http.StatusOK, "post_detail.html", gin.H{
		"Post":        detail.Post,
		"Comments":    detail.Comments,
		"AuthorPosts": detail.AuthorPosts,
		"CommentForm": &forms.CommentForm{},
	})
}

// CreatePost renders the submission form on GET and persists on valid POST.
func (h *Handler) CreatePost(c *gin.Context) {
	user := currentUser(c)
	if c.Request.Method == http.MethodGet {
		h.renderPostForm(c, &forms.PostForm{}, false, 0)
		return
	}

	form := &forms.PostForm{Text: c.PostForm("text"), Group: c.PostForm("group")}
	if !h.validatePostForm(c, form) {
		h.renderPostForm(c, form, false, 0)
		return
	}
	image, ok := h.saveImage(c, form)
	if !ok {
		h.renderPostForm(c, form, false, 0)
		return
	}

	res, err := h.posts.Create(c.Request.Context(), user.ID, service.PostInput{
		Text:    form.Text,
		GroupID: form.GroupID(),
		Image:   image,
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	if res.Rejected {
		// store-level rejection is surfaced, not silently swallowed
		form.SetError("form", "The post could not be saved: "+res.Reason+".")
		h.renderPostForm(c, form, false, 0)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// EditPost lets the author change text, group and image. PubDate and author
// never change. Non-authors are redirected to the post without seeing the
// form.
func (h *Handler) EditPost(c *gin.Context) {
	user := currentUser(c)
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postPath(post.ID))
		return
	}

	if c.Request.Method == http.MethodGet {
		form := &forms.PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.Group = fmt.Sprint(*post.GroupID)
		}
		h.renderPostForm(c, form, true, post.ID)
		return
	}

	form := &forms.PostForm{Text: c.PostForm("text"), Group: c.PostForm("group")}
	if !h.validatePostForm(c, form) {
		h.renderPostForm(c, form, true, post.ID)
		return
	}
	image, ok := h.saveImage(c, form)
	if !ok {
		h.renderPostForm(c, form, true, post.ID)
		return
	}

	if _, err := h.posts.Update(c.Request.Context(), post.ID, user.ID, service.PostInput{
		Text:    form.Text,
		GroupID: form.GroupID(),
		Image:   image,
	}); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(post.ID))
}

// DeletePost removes the post when the requester owns it; otherwise it
// redirects to the post untouched.
func (h *Handler) DeletePost(c *gin.Context) {
	user := currentUser(c)
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	post, err := h.posts.Delete(c.Request.Context(), id, user.ID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrNotAuthor):
		c.Redirect(http.StatusFound, postPath(post.ID))
	case err != nil:
		h.serverError(c, err)
	default:
		c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
	}
}

// validatePostForm runs the tag rules and verifies the optional group
// reference actually exists.
func (h *Handler) validatePostForm(c *gin.Context, form *forms.PostForm) bool {
	ok := form.Validate()
	if gid := form.GroupID(); ok && gid != nil {
		if _, err := h.groups.GetByID(c.Request.Context(), *gid); err != nil {
			form.SetError("Group", "Select a valid group.")
			ok = false
		}
	}
	return ok
}

// saveImage stores the optional upload and returns its object path. A failed
// upload becomes a form error rather than a 500.
func (h *Handler) saveImage(c *gin.Context, form *forms.PostForm) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		// no file attached
		return "", true
	}
	src, err := file.Open()
	if err != nil {
		form.SetError("Image", "The image could not be read.")
		return "", false
	}
	defer src.Close()
	name, err := h.store.SaveImage(c.Request.Context(), file.Filename, src, file.Size)
	if err != nil {
		logger.Error("image upload failed", zap.String("filename", file.Filename), zap.Error(err))
		form.SetError("Image", "The image could not be stored.")
		return "", false
	}
	return name, true
}

func (h *Handler) renderPostForm(c *gin.Context, form *forms.PostForm, isEdit bool, postID uint) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.html(c, http.StatusOK, "create_post.html", gin.H{
		"Form":   form,
		"Groups": groups,
		"IsEdit": isEdit,
		"PostID": postID,
	})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	h.html(c, http.StatusInternalServerError, "500.html", nil)
	c.Abort()
}

func postPath(id uint) string { return fmt.Sprintf("/posts/%d/", id) }
