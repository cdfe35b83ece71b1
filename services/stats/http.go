package stats

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minifoot/minifoot-api/pkg/aggregate"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Stats is the interface for the statistics service.
type Stats interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	Leaderboard(ctx context.Context, metric aggregate.Metric) ([]PlayerSummary, error)
	WatchLeaderboard(ctx context.Context, metric aggregate.Metric) (<-chan []PlayerSummary, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Stats

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/dashboard", h.dashboardHandler)
	r.GET("/leaderboard/:metric", h.leaderboardHandler)
	r.GET("/leaderboard/:metric/watch", h.watchHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) dashboardHandler(c *gin.Context) {
	dashboard, err := h.Service.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *httpHandler) leaderboardHandler(c *gin.Context) {
	metric := aggregate.Metric(c.Param("metric"))
	summaries, err := h.Service.Leaderboard(c.Request.Context(), metric)
	if err != nil {
		if errors.Is(err, ErrUnknownMetric) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric, "players": summaries})
}

// watchHandler streams leaderboard updates as server-sent events until the
// client disconnects.
func (h *httpHandler) watchHandler(c *gin.Context) {
	metric := aggregate.Metric(c.Param("metric"))
	updates, err := h.Service.WatchLeaderboard(c.Request.Context(), metric)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.Stream(func(w io.Writer) bool {
		summaries, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("leaderboard", gin.H{"metric": metric, "players": summaries})
		return true
	})
}
