package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/documents"
	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/queue"
	"github.com/quillcms/quill/internal/repo"
)

type Handler struct {
	Registry *collection.Registry
	Auth     *auth.Service
	Docs     *documents.Service
	Store    *repo.Store
	Redis    *repo.Redis
	Events   queue.Publisher
	Tr       *i18n.Bundle
	Cfg      config.Config
	Log      *zap.Logger
}

func NewHandler(
	reg *collection.Registry,
	authSvc *auth.Service,
	docSvc *documents.Service,
	store *repo.Store,
	rds *repo.Redis,
	pub queue.Publisher,
	tr *i18n.Bundle,
	cfg config.Config,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Registry: reg,
		Auth:     authSvc,
		Docs:     docSvc,
		Store:    store,
		Redis:    rds,
		Events:   pub,
		Tr:       tr,
		Cfg:      cfg,
		Log:      logger,
	}
}

// Healthz godoc
// @Summary Liveness and store connectivity
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		if err := h.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
