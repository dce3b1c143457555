// Package server provides the sysdash Gin-based REST API.
//
//	GET /api/metrics  fresh host snapshot, sampled per request
//	GET /api/health   liveness + host identity
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vesaa/sysdash/internal/collector"
	"github.com/vesaa/sysdash/internal/models"
	"go.uber.org/zap"
)

// Sampler produces one normalized snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) (*models.Snapshot, error)
}

// Describer reports which machine is being sampled.
type Describer interface {
	Describe(ctx context.Context) collector.HostInfo
}

// API serves the metrics routes. It holds no per-request state.
type API struct {
	sampler Sampler
	host    Describer
	log     *zap.Logger
}

// NewAPI creates the handler set. host may be nil.
func NewAPI(s Sampler, host Describer, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{sampler: s, host: host, log: log}
}

// RegisterRoutes wires up the API on the given engine.
func (a *API) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/metrics", a.handleMetrics)
	api.GET("/health", a.handleHealth)
}

// handleMetrics samples the host and returns the snapshot.
// Any provider failure becomes a 500 for this request only.
func (a *API) handleMetrics(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	snap, err := a.sampler.Sample(c.Request.Context())
	if err != nil {
		a.log.Warn("sample failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (a *API) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok", "time": time.Now().UTC()}
	if a.host != nil {
		body["host"] = a.host.Describe(c.Request.Context())
	}
	c.JSON(http.StatusOK, body)
}
