package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/inkwell/config"
	"github.com/d60-Lab/inkwell/internal/api/handler"
	"github.com/d60-Lab/inkwell/internal/api/middleware"
	"github.com/d60-Lab/inkwell/internal/cache"
	"github.com/d60-Lab/inkwell/internal/service"
)

// NewRouter wires middleware and the route table. The index page is the only
// cached route; mutating routes sit behind a per-client rate limit.
func NewRouter(
	cfg *config.Config,
	h *handler.Handler,
	sessions *middleware.Sessions,
	users service.UserService,
	pageCache *cache.PageCache,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.CurrentUser(sessions, users))

	r.LoadHTMLGlob(cfg.Server.TemplateGlob)
	if cfg.Media.Backend == "local" {
		r.Static("/media", cfg.Media.Dir)
	}

	r.GET("/", middleware.CachePage(pageCache), h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.PostDetail)

	r.GET("/about/author/", h.AboutAuthor)
	r.GET("/about/tech/", h.AboutTech)

	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginForm)
		auth.POST("/login", middleware.RateLimit(rate.Limit(5), 10), h.Login)
		auth.GET("/signup", h.SignupForm)
		auth.POST("/signup", middleware.RateLimit(rate.Limit(2), 5), h.Signup)
		auth.POST("/logout", h.Logout)
	}

	authed := r.Group("/", middleware.LoginRequired())
	{
		limited := authed.Group("/", middleware.RateLimit(rate.Limit(10), 20))
		limited.GET("/create/", h.CreatePost)
		limited.POST("/create/", h.CreatePost)
		limited.GET("/posts/:id/edit/", h.EditPost)
		limited.POST("/posts/:id/edit/", h.EditPost)
		limited.POST("/posts/:id/delete/", h.DeletePost)
		limited.POST("/posts/:id/comment/", h.AddComment)

		authed.GET("/follow/", h.FollowIndex)
		authed.GET("/profile/:username/follow/", h.ProfileFollow)
		authed.POST("/profile/:username/follow/", h.ProfileFollow)
		authed.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.POST("/profile/:username/unfollow/", h.ProfileUnfollow)

		authed.POST("/admin/cache/clear", h.ClearCache)
	}

	r.NoRoute(h.NotFoundPage)
	return r
}
