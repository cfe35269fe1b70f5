package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/veritas-labs/veritas/src/fanout"
	"github.com/veritas-labs/veritas/src/providers"
)

type hyperFetch struct {
	sources []providers.Source
	context *providers.AggregateResult
}

// AnalyzeHyper is the low-latency two-phase variant: the primary search
// provider and the aggregation provider run in parallel, then a single
// judgment call. The aggregation, enhancement and social bridges are skipped;
// synthesis is shared with the staged pipeline.
func (a *Analyzer) AnalyzeHyper(ctx context.Context, claim string) (*Result, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	log.Printf("pipeline: hyper analysis of %q", truncate(claim, 80))

	overall := time.Now()
	result := &Result{
		Claim:      claim,
		Mode:       "hyper",
		StageTimes: make(map[string]float64),
	}

	tasks := make(map[string]fanout.Task[hyperFetch], 2)
	if len(a.deps.Searchers) > 0 {
		primary := a.deps.Searchers[0]
		tasks["search"] = func(ctx context.Context) (hyperFetch, error) {
			sources, err := primary.Search(ctx, claim, searchLimit)
			return hyperFetch{sources: sources}, err
		}
	}
	if a.deps.Aggregator != nil {
		tasks["aggregate"] = func(ctx context.Context) (hyperFetch, error) {
			agg, err := a.deps.Aggregator.Search(ctx, claim, "comprehensive")
			return hyperFetch{context: agg}, err
		}
	}

	start := time.Now()
	fetched := fanout.Run(ctx, tasks, len(tasks), hyperTimeout)
	result.StageTimes["source_discovery"] = seconds(start)

	discovery := &DiscoveryStage{ProviderCounts: make(map[string]int)}
	if f, ok := fetched["search"]; ok {
		discovery.Sources = append(discovery.Sources, f.sources...)
		discovery.ProviderCounts["search"] = len(f.sources)
	}
	if f, ok := fetched["aggregate"]; ok && f.context != nil {
		discovery.Context = f.context
		discovery.Sources = append(discovery.Sources, f.context.Sources...)
		discovery.ProviderCounts["aggregate"] = len(f.context.Sources)
	}
	discovery.Sources = dedupeSources(discovery.Sources)
	a.annotateSources(claim, discovery)
	result.Stages.Discovery = discovery
	log.Printf("pipeline: hyper discovery found %d sources (%.2fs)",
		discovery.TotalCount, result.StageTimes["source_discovery"])

	start = time.Now()
	judgment := a.stageJudgment(ctx, claim, discovery.Sources)
	result.StageTimes["openai_analysis"] = seconds(start)
	result.Stages.Judgment = judgment

	applySynthesis(result)
	result.TotalTime = round2(time.Since(overall).Seconds())
	log.Printf("pipeline: hyper verdict %s (%d%%) in %.2fs", result.Verdict, result.Confidence, result.TotalTime)
	return result, nil
}
