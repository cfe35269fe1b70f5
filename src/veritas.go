package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veritas-labs/veritas/src/config"
	"github.com/veritas-labs/veritas/src/data"
	"github.com/veritas-labs/veritas/src/feedback"
	"github.com/veritas-labs/veritas/src/pipeline"
	"github.com/veritas-labs/veritas/src/providers/exa"
	"github.com/veritas-labs/veritas/src/providers/groq"
	"github.com/veritas-labs/veritas/src/providers/openai"
	"github.com/veritas-labs/veritas/src/providers/scira"
	"github.com/veritas-labs/veritas/src/providers/tavily"
	"github.com/veritas-labs/veritas/src/providers/twitter"
	"github.com/veritas-labs/veritas/src/registry"
	"github.com/veritas-labs/veritas/src/webserver"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(&data.Setting{}, &registry.SourceRecord{}, &feedback.Report{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func buildDeps(cfg config.Config, reg *registry.Registry) pipeline.Deps {
	deps := pipeline.Deps{Registry: reg}

	if cfg.ExaKey != "" {
		deps.Searchers = append(deps.Searchers, exa.NewClient(cfg.ExaKey))
	}
	if cfg.TavilyKey != "" {
		deps.Searchers = append(deps.Searchers, tavily.NewClient(cfg.TavilyKey))
	}
	if cfg.SciraKey != "" {
		deps.Aggregator = scira.NewClient(cfg.SciraKey)
	}
	if cfg.OpenAIKey != "" {
		deps.Judges = append(deps.Judges, openai.NewClient(cfg.OpenAIKey))
	}
	if cfg.GroqKey != "" {
		deps.Judges = append(deps.Judges, groq.NewClient(cfg.GroqKey))
	}
	if cfg.TwitterBearer != "" {
		deps.Social = twitter.NewClient(cfg.TwitterBearer)
	}

	for _, s := range deps.Searchers {
		log.Printf("provider: search via %s", s.Name())
	}
	for _, j := range deps.Judges {
		log.Printf("provider: judgment via %s", j.Name())
	}
	if deps.Aggregator == nil {
		log.Printf("provider: aggregation not configured")
	}
	if deps.Social == nil {
		log.Printf("provider: social verification not configured")
	}
	return deps
}

func buildRegistry(cfg config.Config, db *gorm.DB) *registry.Registry {
	var store registry.Store
	if cfg.RegistryStore == "mysql" {
		store = registry.NewGormStore(db)
	} else {
		store = registry.NewFileStore(cfg.RegistryPath)
	}
	return registry.New(store)
}

func main() {
	db := data.MustMySQL(data.GetMySQLDSN())
	migrate(db)

	cfg := config.Load(db)
	rdb := data.OpenRedis(cfg.RedisURL)

	reg := buildRegistry(cfg, db)
	analyzer := pipeline.New(buildDeps(cfg, reg))
	fb := feedback.New(db, reg)

	router := webserver.New(analyzer, reg, fb, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Veritas API listening on %s (%d sources tracked)", cfg.Port, reg.Len())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
