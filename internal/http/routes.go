package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the generated API: CRUD routes for every registered
// collection, plus the auth operations on auth-enabled ones.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logging(h.Log))
	r.Use(Metrics())
	r.Use(Locale(h.Tr, h.Cfg.DefaultLocale))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	for _, c := range h.Registry.All() {
		grp := api.Group("/" + c.Slug)

		if c.Auth != nil {
			rl := RateLimit(h.Redis, h.Cfg.RateLimitPerMin)
			grp.POST("/login", rl, h.Login(c))
			grp.POST("/forgot-password", rl, h.ForgotPassword(c))
			grp.POST("/reset-password", rl, h.ResetPassword(c))
			grp.GET("/me", AuthRequired(h.Cfg.JWTSecret), h.Me(c))
		}

		grp.GET("", h.ListDocuments(c))
		grp.POST("", h.CreateDocument(c))
		grp.GET("/:id", h.GetDocument(c))
		grp.PATCH("/:id", h.UpdateDocument(c))
		grp.DELETE("/:id", h.DeleteDocument(c))
	}

	return r
}
