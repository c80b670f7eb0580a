package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrsheet/internal/config"
	"github.com/cristianadrielbraun/qrsheet/internal/export"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	sessions *style.Store
	exports  *export.Orchestrator
	logger   *logrus.Logger
}

// New returns a new Handler instance.
func New(cfg *config.Config, sessions *style.Store, exports *export.Orchestrator, logger *logrus.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		sessions: sessions,
		exports:  exports,
		logger:   logger,
	}
}

// Routes registers pages, API routes and static assets on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.Static("/web/static", "web/static")
	r.GET("/healthz", h.Healthz)

	s := r.Group("/", h.Session())
	s.GET("/", h.HomePage)

	api := s.Group("/api")
	{
		api.POST("/style", h.UpdateStyle)
		api.POST("/logo", h.UploadLogo)
		api.POST("/logo/builtin", h.ToggleBuiltinLogo)
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/export", h.ExportPDF)
		api.POST("/htmx/toast", h.GenericToast)
	}
}

// Healthz reports liveness and the number of open sessions.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Count()})
}
