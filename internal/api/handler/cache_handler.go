package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearCache drops every cached page so the next request re-renders from
// current state. This is the administrative invalidation trigger; there is
// no per-entity invalidation.
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.pageCache.Clear(c.Request.Context()); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
