package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/veritas-labs/veritas/src/feedback"
	"github.com/veritas-labs/veritas/src/pipeline"
	"github.com/veritas-labs/veritas/src/registry"
)

// New builds the HTTP API around the analyzer, registry and feedback manager.
func New(analyzer *pipeline.Analyzer, reg *registry.Registry, fb *feedback.Manager, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	h := &handlers{
		analyzer: analyzer,
		registry: reg,
		feedback: fb,
		cache:    &resultCache{rdb: rdb},
	}

	v1 := r.Group("/v1")
	{
		v1.POST("/verify", h.Verify)
		v1.POST("/verify/hyper", h.VerifyHyper)
		v1.POST("/feedback", h.SubmitFeedback)
		v1.GET("/feedback/stats", h.FeedbackStats)
		v1.GET("/sources", h.ListSources)
		v1.GET("/sources/:domain", h.SourceInfo)
	}

	r.GET("/healthz", h.Health)
	return r
}
