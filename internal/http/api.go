package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	entries   service.EntryService
	users     service.UserService
	tokens    *auth.Issuer
	storage   storage.Service
	bucket    string
	keyPrefix string
	log       logrus.FieldLogger
}

// NewHandler builds the API handler. store may be nil, in which case the
// archive endpoints answer 503.
func NewHandler(
	entries service.EntryService,
	users service.UserService,
	tokens *auth.Issuer,
	store storage.Service,
	bucket, keyPrefix string,
	log logrus.FieldLogger,
) *Handler {
	registerValidators()
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		entries:   entries,
		users:     users,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		log:       log.WithField("component", "http"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.log))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/users", h.registerUser)
		api.POST("/users/authenticate", h.authenticate)
	}

	protected := api.Group("")
	protected.Use(h.requireAuth())
	{
		protected.GET("/users/:id/balance", h.balance)

		protected.POST("/entries", h.createEntry)
		protected.GET("/entries", h.searchEntries)
		protected.GET("/entries/export", h.exportEntries)
		protected.POST("/entries/archive", h.archiveEntries)
		protected.GET("/entries/archives", h.listArchives)
		protected.GET("/entries/:id", h.getEntry)
		protected.PUT("/entries/:id", h.updateEntry)
		protected.PUT("/entries/:id/status", h.updateEntryStatus)
		protected.DELETE("/entries/:id", h.deleteEntry)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
