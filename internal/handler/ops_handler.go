package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leo88345/Marketlive/internal/model"
)

type Broadcaster interface {
	Broadcast(message any)
	Count() int
}

type SeenCounter interface {
	Counts(ctx context.Context) (urls int64, fingerprints int64, err error)
}

type BackendSwitcher interface {
	Backend() string
	Backends() []string
	SetBackend(name string) error
}

type OpsHandler struct {
	hub       Broadcaster
	seen      SeenCounter
	gateway   BackendSwitcher
	threshold float64
	sources   []string
}

func NewOpsHandler(hub Broadcaster, seen SeenCounter, gateway BackendSwitcher, threshold float64, sources []string) *OpsHandler {
	return &OpsHandler{
		hub:       hub,
		seen:      seen,
		gateway:   gateway,
		threshold: threshold,
		sources:   sources,
	}
}

func (h *OpsHandler) GetStatus(c *gin.Context) {
	urls, fingerprints, err := h.seen.Counts(c.Request.Context())
	if err != nil {
		slog.Error("error reading seen-state counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Seen-state unavailable"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:           "running",
		Backend:          h.gateway.Backend(),
		Backends:         h.gateway.Backends(),
		Subscribers:      h.hub.Count(),
		SeenURLs:         urls,
		SeenFingerprints: fingerprints,
		Threshold:        h.threshold,
		Sources:          h.sources,
	})
}

func (h *OpsHandler) Configure(c *gin.Context) {
	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.gateway.SetBackend(req.Backend); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slog.Info("classification backend switched", "backend", req.Backend)
	c.JSON(http.StatusOK, ConfigureResponse{Status: "success", Backend: req.Backend})
}

// SendTestNews injects a synthetic high-importance article so the push path
// can be verified end to end without waiting for real news.
func (h *OpsHandler) SendTestNews(c *gin.Context) {
	now := time.Now()

	h.hub.Broadcast(model.Alert{
		Headline:        "TEST: Federal Reserve Announces Emergency Rate Cut",
		Source:          "Test Source",
		URL:             fmt.Sprintf("https://example.com/test-%d", now.UnixNano()),
		ImportanceScore: 9.5,
		Summary:         "The Federal Reserve has announced an emergency interest rate cut to address current economic conditions. This monetary policy change is expected to have significant market implications.",
		Timestamp:       now.Unix(),
	})

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Test news sent"})
}

func (h *OpsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
