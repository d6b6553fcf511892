package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/inkwell/internal/service"
)

// FollowIndex lists posts authored by users the viewer follows.
func (h *Handler) FollowIndex(c *gin.Context) {
	user := currentUser(c)
	feed, err := h.posts.FollowFeed(c.Request.Context(), user.ID, c.Query("page"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.html(c, http.StatusOK, "follow.html", gin.H{"Feed": feed})
}

// ProfileFollow subscribes the viewer to the named author. Duplicate and
// self follows are no-ops; either way the viewer lands on the profile.
func (h *Handler) ProfileFollow(c *gin.Context) {
	user := currentUser(c)
	author, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	if err := h.rels.Follow(c.Request.Context(), user.ID, author.ID); err != nil && !errors.Is(err, service.ErrSelfFollow) {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow removes the subscription; a relation that does not exist
// is a 404.
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	user := currentUser(c)
	author, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	if err := h.rels.Unfollow(c.Request.Context(), user.ID, author.ID); err != nil {
		if errors.Is(err, service.ErrNotFollowing) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
