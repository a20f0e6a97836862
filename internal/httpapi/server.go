package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
	// Metrics, when set, is served on /metrics.
	Metrics prometheus.Gatherer
}

type handler struct {
	shop   *app.Shop
	logger *slog.Logger
}

// NewRouter builds the REST boundary over shop.
func NewRouter(shop *app.Shop, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{shop: shop, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/healthz", h.health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.GET("/dashboard", h.dashboard)

	api.GET("/sessions", h.listSessions)
	api.POST("/sessions", h.startSession)
	api.POST("/sessions/:employeeId/end", h.endSession)
	api.PUT("/sessions/:employeeId/client-start", h.updateClientStart)

	api.GET("/records", h.listRecords)
	api.POST("/records", h.addRecord)
	api.GET("/records/:id", h.getRecord)
	api.PATCH("/records/:id/duration", h.editDuration)
	api.DELETE("/records/:id", h.deleteRecord)

	api.GET("/groups/:employeeId/:date", h.getGroups)
	api.PATCH("/groups/:employeeId/:date", h.writeGroups)

	api.GET("/days/closed", h.listClosedDays)
	api.GET("/days/:date", h.dayState)
	api.POST("/days/:date/close", h.closeDay)
	api.POST("/days/:date/reopen", h.reopenDay)
	api.GET("/days/:date/snapshot", h.snapshot)
	api.GET("/days/:date/incident", h.getIncident)
	api.PUT("/days/:date/incident", h.setIncident)

	api.GET("/reports/day/:date", h.dayReport)
	api.GET("/reports/range", h.rangeReport)
	api.GET("/reports/month/:month", h.monthReport)

	return r
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": h.shop.Now().UTC()})
}

func (h *handler) dashboard(c *gin.Context) {
	dash, err := h.shop.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
