package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/veritas-labs/veritas/src/fanout"
	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/registry"
	"github.com/veritas-labs/veritas/src/relevance"
)

// Stage timeouts, tuned per provider weight: discovery providers answer in
// seconds, judges can take most of a minute.
const (
	discoveryTimeout = 15 * time.Second
	hyperTimeout     = 10 * time.Second
	bridgeTimeout    = 10 * time.Second
	judgmentTimeout  = 30 * time.Second
	socialTimeout    = 10 * time.Second
)

const (
	searchLimit     = 5
	socialLimit     = 10
	socialQueryMax  = 100
	judgeSourcesMax = 5
)

// ErrEmptyClaim is the only error Analyze can return; every provider failure
// degrades to a well-formed result instead.
var ErrEmptyClaim = errors.New("claim text is empty")

// Deps are the injected collaborators of an Analyzer. Any of them may be nil
// (or empty) to mark that capability as unavailable for the deployment.
type Deps struct {
	Searchers  []providers.Searcher
	Aggregator providers.Aggregator
	Judges     []providers.Judge
	Social     providers.SocialSearcher
	Registry   *registry.Registry
}

// Analyzer orchestrates the staged verification pipeline:
// discovery -> aggregation -> judgment -> enhancement -> social consensus,
// then synthesizes a single verdict from whatever stages contributed.
type Analyzer struct {
	deps Deps
}

func New(deps Deps) *Analyzer {
	return &Analyzer{deps: deps}
}

// Analyze runs the full staged pipeline for one claim.
func (a *Analyzer) Analyze(ctx context.Context, claim string) (*Result, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	log.Printf("pipeline: staged analysis of %q", truncate(claim, 80))

	result := &Result{
		Claim:      claim,
		StageTimes: make(map[string]float64),
	}

	start := time.Now()
	discovery := a.stageDiscovery(ctx, claim)
	result.StageTimes["source_discovery"] = seconds(start)
	result.Stages.Discovery = discovery
	log.Printf("pipeline: discovery found %d sources (%.2fs)", discovery.TotalCount, result.StageTimes["source_discovery"])

	start = time.Now()
	aggregation := a.stageAggregation(ctx, claim, discovery)
	result.StageTimes["scira_aggregation"] = seconds(start)
	result.Stages.Aggregation = aggregation

	start = time.Now()
	judgment := a.stageJudgment(ctx, claim, aggregation.AggregatedSources)
	result.StageTimes["openai_analysis"] = seconds(start)
	result.Stages.Judgment = judgment
	log.Printf("pipeline: judgment = %s (%.2fs)", judgment.Verdict, result.StageTimes["openai_analysis"])

	start = time.Now()
	result.Stages.Enhancement = a.stageEnhancement(ctx, claim, judgment)
	result.StageTimes["scira_enhancement"] = seconds(start)

	start = time.Now()
	social := a.stageSocial(ctx, claim)
	result.StageTimes["twitter_verification"] = seconds(start)
	result.Stages.Social = social

	applySynthesis(result)
	log.Printf("pipeline: final verdict %s (%d%% confidence)", result.Verdict, result.Confidence)
	return result, nil
}

func (a *Analyzer) stageDiscovery(ctx context.Context, claim string) *DiscoveryStage {
	tasks := make(map[string]fanout.Task[[]providers.Source], len(a.deps.Searchers))
	for _, s := range a.deps.Searchers {
		s := s
		tasks[s.Name()] = func(ctx context.Context) ([]providers.Source, error) {
			return s.Search(ctx, claim, searchLimit)
		}
	}

	found := fanout.Run(ctx, tasks, len(tasks), discoveryTimeout)

	stage := &DiscoveryStage{ProviderCounts: make(map[string]int)}
	for _, s := range a.deps.Searchers {
		sources := found[s.Name()]
		stage.ProviderCounts[s.Name()] = len(sources)
		stage.Sources = append(stage.Sources, sources...)
	}
	stage.Sources = dedupeSources(stage.Sources)
	a.annotateSources(claim, stage)
	return stage
}

// annotateSources attaches registry credibility and claim relevance to every
// discovered source, then derives the stage aggregates.
func (a *Analyzer) annotateSources(claim string, stage *DiscoveryStage) {
	stage.TotalCount = len(stage.Sources)

	totalCredibility := 0.0
	for i := range stage.Sources {
		src := &stage.Sources[i]
		if src.URL == "" {
			continue
		}
		if a.deps.Registry != nil {
			src.RegistryScore = a.deps.Registry.GetScore(src.URL)
		} else {
			src.RegistryScore = 50
		}
		src.DomainScore = src.RegistryScore / 100
		totalCredibility += src.RegistryScore
	}
	if stage.TotalCount > 0 {
		stage.AvgSourceCredibility = round2(totalCredibility / float64(stage.TotalCount))
	} else {
		stage.AvgSourceCredibility = 50
	}

	docs := make([]relevance.Doc, len(stage.Sources))
	for i, src := range stage.Sources {
		docs[i] = relevance.Doc{
			Text:        src.Title + " . " + src.Excerpt,
			DomainScore: src.DomainScore,
			HasURL:      src.URL != "",
		}
	}
	eval := relevance.Evaluate(claim, docs)
	for i := range stage.Sources {
		if i < len(eval.Similarities) {
			stage.Sources[i].Relevance = eval.Similarities[i]
		}
	}
	stage.SemanticCredibility = round2(eval.Credibility)
	stage.StrongMatches = eval.StrongMatches
}

func (a *Analyzer) stageAggregation(ctx context.Context, claim string, discovery *DiscoveryStage) *AggregationStage {
	stage := &AggregationStage{AggregatedSources: discovery.Sources}
	if a.deps.Aggregator == nil {
		return stage
	}

	stage.Available = true
	bctx, cancel := context.WithTimeout(ctx, bridgeTimeout)
	defer cancel()

	agg, err := a.deps.Aggregator.Search(bctx, claim, "comprehensive")
	if err != nil {
		log.Printf("pipeline: aggregation bridge failed: %v", err)
		return stage
	}
	stage.CrossReferenced = true
	stage.Context = agg
	return stage
}

func (a *Analyzer) stageJudgment(ctx context.Context, claim string, sources []providers.Source) *JudgmentStage {
	ranked := rankSources(sources)
	if len(ranked) > judgeSourcesMax {
		ranked = ranked[:judgeSourcesMax]
	}

	errMsg := "no judgment provider configured"
	rawPayload := ""

	for _, judge := range a.deps.Judges {
		jctx, cancel := context.WithTimeout(ctx, judgmentTimeout)
		var j providers.Judgment
		if len(ranked) > 0 {
			j = judge.JudgeWithSources(jctx, claim, ranked)
		} else {
			j = judge.JudgeText(jctx, claim)
		}
		cancel()

		switch j.State {
		case providers.JudgmentOK:
			return &JudgmentStage{
				Verdict:    j.Verdict,
				Confidence: j.Confidence,
				Reasoning:  j.Reasoning,
				Available:  true,
				Judge:      judge.Name(),
			}
		case providers.JudgmentParseError:
			log.Printf("pipeline: judge %s returned malformed payload", judge.Name())
			errMsg = "malformed judgment payload"
			rawPayload = j.Raw
		default:
			log.Printf("pipeline: judge %s unavailable", judge.Name())
			if errMsg == "no judgment provider configured" {
				errMsg = "analysis failed"
			}
		}
	}

	if len(sources) > 0 {
		return &JudgmentStage{
			Verdict:    "Sources Found",
			Confidence: 40,
			Reasoning: fmt.Sprintf("AI analysis unavailable (%s). Found %d relevant sources - please verify manually.",
				errMsg, len(sources)),
			Error: errMsg,
			Raw:   rawPayload,
		}
	}
	return &JudgmentStage{
		Verdict:    "Uncertain",
		Confidence: 30,
		Reasoning:  fmt.Sprintf("AI Analysis Error: %s", errMsg),
		Error:      errMsg,
		Raw:        rawPayload,
	}
}

func (a *Analyzer) stageEnhancement(ctx context.Context, claim string, judgment *JudgmentStage) *EnhancementStage {
	stage := &EnhancementStage{}
	if a.deps.Aggregator == nil {
		return stage
	}

	stage.Available = true
	stage.Query = fmt.Sprintf("%s fact check %s", claim, strings.ToLower(judgment.Verdict))

	bctx, cancel := context.WithTimeout(ctx, bridgeTimeout)
	defer cancel()

	agg, err := a.deps.Aggregator.Search(bctx, stage.Query, "news")
	if err != nil {
		log.Printf("pipeline: enhancement bridge failed: %v", err)
		return stage
	}
	stage.Enhanced = true
	stage.Result = agg
	return stage
}

func (a *Analyzer) stageSocial(ctx context.Context, claim string) *SocialStage {
	stage := &SocialStage{Posts: []providers.Post{}}
	if a.deps.Social == nil {
		return stage
	}

	sctx, cancel := context.WithTimeout(ctx, socialTimeout)
	defer cancel()

	posts, err := a.deps.Social.SearchPosts(sctx, truncate(claim, socialQueryMax), socialLimit)
	if err != nil {
		log.Printf("pipeline: social search failed: %v", err)
		return stage
	}
	stage.Available = true
	stage.Posts = posts
	stage.PostCount = len(posts)
	stage.Consensus = computeConsensus(posts)
	return stage
}

// dedupeSources drops repeated URLs, keeping first occurrence and provider
// call order. URL-less sources (e.g. synthesized answers) always pass.
func dedupeSources(sources []providers.Source) []providers.Source {
	seen := make(map[string]bool, len(sources))
	out := sources[:0]
	for _, src := range sources {
		if src.URL != "" {
			if seen[src.URL] {
				continue
			}
			seen[src.URL] = true
		}
		out = append(out, src)
	}
	return out
}

// rankSources orders evidence for the judge: most relevant first, domain
// trust breaking ties.
func rankSources(sources []providers.Source) []providers.Source {
	ranked := make([]providers.Source, len(sources))
	copy(ranked, sources)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Relevance != ranked[j].Relevance {
			return ranked[i].Relevance > ranked[j].Relevance
		}
		return ranked[i].RegistryScore > ranked[j].RegistryScore
	})
	return ranked
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func seconds(start time.Time) float64 {
	return round2(time.Since(start).Seconds())
}
