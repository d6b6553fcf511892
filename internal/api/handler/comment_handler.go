package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/inkwell/internal/forms"
	"github.com/d60-Lab/inkwell/internal/service"
)

// AddComment attaches a comment to a post. An invalid payload redisplays the
// post detail page with the field errors attached.
func (h *Handler) AddComment(c *gin.Context) {
	user := currentUser(c)
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}

	form := &forms.CommentForm{Text: c.PostForm("text")}
	if !form.Validate() {
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
			"CommentForm": form,
		})
		return
	}

	if _, err := h.comments.Add(c.Request.Context(), id, user.ID, form.Text); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}
