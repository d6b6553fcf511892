package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AboutAuthor(c *gin.Context) {
	h.html(c, http.StatusOK, "about_author.html", nil)
}

func (h *Handler) AboutTech(c *gin.Context) {
	h.html(c, http.StatusOK, "about_tech.html", nil)
}
