// Package handler contains the gin handlers for every route. Handlers stay
// thin: parse and validate input, call a service, render a template or
// redirect. Ownership checks are explicit guard clauses here and in the
// services, never implicit framework behavior.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/inkwell/internal/api/middleware"
	"github.com/d60-Lab/inkwell/internal/cache"
	"github.com/d60-Lab/inkwell/internal/model"
	"github.com/d60-Lab/inkwell/internal/repository"
	"github.com/d60-Lab/inkwell/internal/service"
	"github.com/d60-Lab/inkwell/internal/storage"
)

type Handler struct {
	posts     service.PostService
	comments  service.CommentService
	users     service.UserService
	rels      service.RelationshipService
	groups    repository.GroupRepository
	sessions  *middleware.Sessions
	store     storage.Store
	pageCache *cache.PageCache
}

func New(
	posts service.PostService,
	comments service.CommentService,
	users service.UserService,
	rels service.RelationshipService,
	groups repository.GroupRepository,
	sessions *middleware.Sessions,
	store storage.Store,
	pageCache *cache.PageCache,
) *Handler {
	return &Handler{
		posts:     posts,
		comments:  comments,
		users:     users,
		rels:      rels,
		groups:    groups,
		sessions:  sessions,
		store:     store,
		pageCache: pageCache,
	}
}

// html renders a template with the current user merged into the context.
func (h *Handler) html(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.UserFrom(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(status, name, data)
}

// notFound renders the dedicated 404 page.
func (h *Handler) notFound(c *gin.Context) {
	h.html(c, http.StatusNotFound, "404.html", nil)
	c.Abort()
}

// NotFoundPage handles unknown routes.
func (h *Handler) NotFoundPage(c *gin.Context) { h.notFound(c) }

// currentUser returns the authenticated user; routes behind LoginRequired
// always have one.
func currentUser(c *gin.Context) *model.User {
	user, _ := middleware.UserFrom(c)
	return user
}

// postID parses the :id path parameter.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
