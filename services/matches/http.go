package matches

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
	"github.com/minifoot/minifoot-api/repos/resend"
	"github.com/minifoot/minifoot-api/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Matches is the interface for the match recording service.
type Matches interface {
	CommitMatch(ctx context.Context, request CommitMatchRequest) (string, error)
	GetMatch(ctx context.Context, id string) (MatchDetail, error)
	ListMatches(ctx context.Context) ([]DayGroup, error)
	Watch(ctx context.Context) <-chan []DayGroup
	Share(ctx context.Context, id string) (string, error)
	Resolve(ctx context.Context, code string) (MatchDetail, error)
	SendReport(ctx context.Context, id, email string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Matches

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("", h.commitHandler)
	r.GET("", h.listHandler)
	r.GET("/watch", h.watchHandler)
	r.GET("/:match_id", h.getHandler)
	r.GET("/:match_id/share", h.shareHandler)
	r.GET("/shared/:share_code", h.sharedHandler)
	r.POST("/:match_id/report", h.reportHandler)
}

type httpHandler struct {
	HTTPOptions
}

// Validation failures block the save and come back as 400s; only store
// failures map to 500.
func isValidationErr(err error) bool {
	return errors.Is(err, ErrRosterOverlap) ||
		errors.Is(err, ErrRosterTooSmall) ||
		errors.Is(err, matchlog.ErrInvalidScorer) ||
		errors.Is(err, matchlog.ErrInvalidAssist) ||
		errors.Is(err, matchlog.ErrSelfAssist) ||
		errors.Is(err, matchlog.ErrAmbiguousTeam) ||
		errors.Is(err, matchlog.ErrCrossAssist)
}

func (h *httpHandler) commitHandler(c *gin.Context) {
	var request CommitMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	id, err := h.Service.CommitMatch(c.Request.Context(), request)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save match"})
		c.Abort()
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *httpHandler) listHandler(c *gin.Context) {
	groups, err := h.Service.ListMatches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": groups})
}

// watchHandler streams the grouped match list as server-sent events, one
// event per store change, until the client disconnects.
func (h *httpHandler) watchHandler(c *gin.Context) {
	updates := h.Service.Watch(c.Request.Context())
	c.Stream(func(w io.Writer) bool {
		groups, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("matches", gin.H{"days": groups})
		return true
	})
}

func (h *httpHandler) getHandler(c *gin.Context) {
	detail, err := h.Service.GetMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *httpHandler) shareHandler(c *gin.Context) {
	code, err := h.Service.Share(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

func (h *httpHandler) sharedHandler(c *gin.Context) {
	detail, err := h.Service.Resolve(c.Request.Context(), c.Param("share_code"))
	if err != nil {
		if errors.Is(err, ErrBadShareCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *httpHandler) reportHandler(c *gin.Context) {
	var request resend.ReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.SendReport(c.Request.Context(), c.Param("match_id"), request.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send report"})
		c.Abort()
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Report sent"})
}
