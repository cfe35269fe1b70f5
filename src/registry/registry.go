package registry

import (
	"log"
	"math"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category labels are advisory; Score is the source of truth.
const (
	CategoryNew        = "new"
	CategoryTrusted    = "trusted"
	CategoryDegraded   = "degraded"
	CategoryUnreliable = "unreliable"
	CategoryRecovering = "recovering"
)

const (
	minScore     = 5.0
	maxScore     = 100.0
	defaultScore = 100.0
	neutralScore = 50.0
)

// Entry tracks the learned credibility of one domain.
type Entry struct {
	Score       float64   `json:"score"`
	TotalChecks int       `json:"total_checks"`
	FakeCount   int       `json:"fake_count"`
	TrueCount   int       `json:"true_count"`
	LastUpdated time.Time `json:"last_updated"`
	Category    string    `json:"category"`
}

// Info is an Entry together with its registry key.
type Info struct {
	Domain string `json:"domain"`
	Entry
}

// Registry is the persistent source credibility store. Scores are halved on a
// fake report and move half the remaining gap toward 100 on a true report, so
// trust is lost far faster than it is earned. Every mutation is written
// through to the Store; a failed write degrades to memory-only for the run.
type Registry struct {
	mu      sync.Mutex
	store   Store
	sources map[string]*Entry
}

// New loads the registry from store, seeding it with the static trusted and
// unreliable lists when the store is empty.
func New(store Store) *Registry {
	r := &Registry{store: store, sources: make(map[string]*Entry)}

	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			log.Printf("registry: could not load store: %v", err)
		}
		if len(loaded) > 0 {
			r.sources = loaded
			log.Printf("registry: %d sources tracked", len(r.sources))
			return r
		}
	}

	now := time.Now()
	for domain, score := range trustedSeeds {
		r.sources[domain] = &Entry{Score: score, LastUpdated: now, Category: CategoryTrusted}
	}
	for domain, score := range unreliableSeeds {
		r.sources[domain] = &Entry{Score: score, LastUpdated: now, Category: CategoryUnreliable}
	}
	r.persist()
	log.Printf("registry: seeded %d sources", len(r.sources))
	return r
}

// ExtractDomain normalizes a URL to its registry key: lower-cased host with
// any www. prefix stripped. Scheme-less URLs like "reuters.com/x" resolve to
// the same key as their https form. Returns "" for malformed input.
func ExtractDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	domain := strings.ToLower(u.Host)
	domain = strings.TrimPrefix(domain, "www.")
	return domain
}

// GetScore returns the credibility score for a URL's domain. Unseen domains
// are registered at 100 (benefit of the doubt); malformed URLs yield a
// neutral 50 without registering anything.
func (r *Registry) GetScore(rawURL string) float64 {
	domain := ExtractDomain(rawURL)
	if domain == "" {
		return neutralScore
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sources[domain]; ok {
		return e.Score
	}
	r.registerLocked(domain)
	return defaultScore
}

// ReportFake halves the domain's score: new = max(5, old/2).
func (r *Registry) ReportFake(rawURL string) {
	domain := ExtractDomain(rawURL)
	if domain == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sources[domain]
	if !ok {
		e = r.registerLocked(domain)
	}

	oldScore := e.Score
	newScore := math.Max(minScore, oldScore/2)

	e.Score = round2(newScore)
	e.TotalChecks++
	e.FakeCount++
	e.LastUpdated = time.Now()

	if e.Category == CategoryTrusted && newScore < 50 {
		e.Category = CategoryDegraded
	} else if e.Category == CategoryNew && newScore < 50 {
		e.Category = CategoryUnreliable
	}

	log.Printf("registry: %s score %.2f -> %.2f (fake reported)", domain, oldScore, e.Score)
	r.persist()
}

// ReportTrue moves the domain's score half the remaining distance to 100:
// new = old + (100-old)/2. The score approaches but never reaches 100.
func (r *Registry) ReportTrue(rawURL string) {
	domain := ExtractDomain(rawURL)
	if domain == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sources[domain]
	if !ok {
		e = r.registerLocked(domain)
	}

	oldScore := e.Score
	gap := maxScore - oldScore
	newScore := math.Min(maxScore, oldScore+gap/2)

	e.Score = round2(newScore)
	// Rounding must not grant absolute trust: a score below 100 stays below.
	if e.Score >= maxScore && oldScore < maxScore {
		e.Score = 99.99
	}
	e.TotalChecks++
	e.TrueCount++
	e.LastUpdated = time.Now()

	if e.Category == CategoryUnreliable && newScore > 60 {
		e.Category = CategoryRecovering
	} else if (e.Category == CategoryRecovering || e.Category == CategoryDegraded) && newScore > 80 {
		e.Category = CategoryTrusted
	}

	log.Printf("registry: %s score %.2f -> %.2f (true reported)", domain, oldScore, e.Score)
	r.persist()
}

// WeightedCredibility is the arithmetic mean of GetScore over the URLs that
// are non-empty. An empty list, or one with no URLs, scores a neutral 50.
func (r *Registry) WeightedCredibility(urls []string) float64 {
	total := 0.0
	count := 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		total += r.GetScore(u)
		count++
	}
	if count == 0 {
		return neutralScore
	}
	return round2(total / float64(count))
}

// GetInfo returns the full entry for a URL's domain, or nil if unknown.
func (r *Registry) GetInfo(rawURL string) *Info {
	domain := ExtractDomain(rawURL)
	if domain == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sources[domain]
	if !ok {
		return nil
	}
	return &Info{Domain: domain, Entry: *e}
}

// All returns every entry scoring at or above minimum, best first.
func (r *Registry) All(minimum float64) []Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]Info, 0, len(r.sources))
	for domain, e := range r.sources {
		if e.Score >= minimum {
			infos = append(infos, Info{Domain: domain, Entry: *e})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Score > infos[j].Score })
	return infos
}

// Trusted lists domains with score > 80.
func (r *Registry) Trusted() []string {
	return r.domainsWhere(func(e *Entry) bool { return e.Score > 80 })
}

// Unreliable lists domains with score < 40.
func (r *Registry) Unreliable() []string {
	return r.domainsWhere(func(e *Entry) bool { return e.Score < 40 })
}

func (r *Registry) domainsWhere(pred func(*Entry) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var domains []string
	for domain, e := range r.sources {
		if pred(e) {
			domains = append(domains, domain)
		}
	}
	sort.Strings(domains)
	return domains
}

// Len returns the number of tracked domains.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sources)
}

func (r *Registry) registerLocked(domain string) *Entry {
	e := &Entry{
		Score:       defaultScore,
		LastUpdated: time.Now(),
		Category:    CategoryNew,
	}
	r.sources[domain] = e
	r.persist()
	return e
}

// persist writes the whole registry through to the store. Callers hold r.mu.
// Persistence failure is non-fatal: the registry keeps serving from memory.
func (r *Registry) persist() {
	if r.store == nil {
		return
	}
	if err := r.store.Save(r.sources); err != nil {
		log.Printf("registry: could not save: %v", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
