package webserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veritas-labs/veritas/src/feedback"
	"github.com/veritas-labs/veritas/src/pipeline"
	"github.com/veritas-labs/veritas/src/registry"
)

type handlers struct {
	analyzer *pipeline.Analyzer
	registry *registry.Registry
	feedback *feedback.Manager
	cache    *resultCache
}

type verifyRequest struct {
	Text string `json:"text" binding:"required"`
}

type feedbackRequest struct {
	Result   pipeline.Result `json:"result" binding:"required"`
	Feedback string          `json:"feedback" binding:"required"`
}

// Verify runs the full staged pipeline. Provider degradation never yields an
// error response; only an empty claim does.
func (h *handlers) Verify(c *gin.Context) {
	h.runVerify(c, "staged", h.analyzer.Analyze)
}

// VerifyHyper runs the low-latency two-phase variant.
func (h *handlers) VerifyHyper(c *gin.Context) {
	h.runVerify(c, "hyper", h.analyzer.AnalyzeHyper)
}

func (h *handlers) runVerify(c *gin.Context, mode string, run func(context.Context, string) (*pipeline.Result, error)) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	if cached := h.cache.get(c.Request.Context(), mode, req.Text); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := run(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyClaim) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.cache.set(c.Request.Context(), mode, result)
	c.JSON(http.StatusOK, result)
}

func (h *handlers) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "result and feedback are required"})
		return
	}

	id, err := h.feedback.Submit(&req.Result, req.Feedback)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "recorded"})
}

func (h *handlers) FeedbackStats(c *gin.Context) {
	stats, err := h.feedback.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) ListSources(c *gin.Context) {
	minScore := 0.0
	if raw := c.Query("min_score"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			minScore = v
		}
	}
	c.JSON(http.StatusOK, gin.H{"sources": h.registry.All(minScore)})
}

func (h *handlers) SourceInfo(c *gin.Context) {
	info := h.registry.GetInfo("https://" + c.Param("domain"))
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown domain"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sources_tracked": h.registry.Len()})
}
