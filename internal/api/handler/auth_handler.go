package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginForm renders the login page; the next parameter survives the round
// trip through the form.
func (h *Handler) LoginForm(c *gin.Context) {
	h.html(c, http.StatusOK, "login.html", gin.H{"Next": c.Query("next")})
}

// Login checks credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.html(c, http.StatusOK, "login.html", gin.H{
			"Next":  c.PostForm("next"),
			"Error": "Unknown username or wrong password.",
		})
		return
	}
	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(c.PostForm("next")))
}

// SignupForm renders the registration page.
func (h *Handler) SignupForm(c *gin.Context) {
	h.html(c, http.StatusOK, "signup.html", nil)
}

// Signup registers a user and logs them in.
func (h *Handler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.html(c, http.StatusOK, "signup.html", gin.H{"Error": "Username and password are required."})
		return
	}
	user, err := h.users.Register(c.Request.Context(), username, email, password)
	if err != nil {
		h.html(c, http.StatusOK, "signup.html", gin.H{"Error": err.Error()})
		return
	}
	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the session.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps redirects on-site: only relative paths are honoured.
func safeNext(next string) string {
	if next == "" {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.String()
}
