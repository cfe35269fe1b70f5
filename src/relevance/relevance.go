package relevance

import (
	"math"
	"regexp"
	"strings"
)

// MatchThreshold is the cosine similarity above which a source is treated as
// semantically matching the claim. It filters out unrelated articles while
// still allowing different phrasings of the same story.
const MatchThreshold = 0.15

// fallbackSimilarity is assigned to every source when the vocabulary is too
// degenerate to compute similarities at all.
const fallbackSimilarity = 0.1

// Doc is one candidate source as seen by the filter.
type Doc struct {
	Text        string  // title + excerpt
	DomainScore float64 // domain trust normalized to [0,1]
	HasURL      bool
}

// Result carries the per-source similarities and the bucketed aggregate.
type Result struct {
	Similarities  []float64
	StrongMatches int
	Credibility   float64 // 0-100
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Evaluate builds a term-weighted vector space over the claim and every doc,
// scores each doc's cosine similarity against the claim, and folds domain
// trust and semantic match into a bucketed aggregate credibility:
// a doc on a trusted domain (>0.5) with a semantic match contributes
// domainScore*2.0; anything else contributes domainScore*0.5*similarity.
func Evaluate(claim string, docs []Doc) Result {
	sims := Similarities(claim, docs)

	strong := 0
	sum := 0.0
	for i, doc := range docs {
		if !doc.HasURL {
			continue
		}
		sim := 0.0
		if i < len(sims) {
			sim = sims[i]
		}
		if doc.DomainScore > 0.5 && sim > MatchThreshold {
			strong++
			sum += doc.DomainScore * 2.0
		} else {
			sum += doc.DomainScore * 0.5 * sim
		}
	}

	var credibility float64
	switch {
	case strong >= 2:
		credibility = math.Min(100, 85+sum*5)
	case strong == 1:
		credibility = 70
	default:
		credibility = math.Min(40, sum*10)
	}

	return Result{Similarities: sims, StrongMatches: strong, Credibility: credibility}
}

// Similarities computes the cosine similarity between the claim and each doc
// in tf-idf space. If the claim produces no usable terms the computation is
// degenerate and every doc falls back to a low fixed similarity instead of
// aborting scoring.
func Similarities(claim string, docs []Doc) []float64 {
	if len(docs) == 0 {
		return nil
	}

	claimTerms := tokenize(claim)
	docTerms := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		docTerms[i] = tokenize(doc.Text)
	}

	if len(claimTerms) == 0 {
		return fallback(len(docs))
	}

	// Document frequencies over claim + docs.
	df := make(map[string]int)
	countDoc := func(terms map[string]float64) {
		for term := range terms {
			df[term]++
		}
	}
	countDoc(claimTerms)
	for _, terms := range docTerms {
		countDoc(terms)
	}
	if len(df) == 0 {
		return fallback(len(docs))
	}

	n := float64(len(docs) + 1)
	idf := func(term string) float64 {
		return math.Log(n/float64(df[term])) + 1
	}

	claimVec := weigh(claimTerms, idf)
	if norm(claimVec) == 0 {
		return fallback(len(docs))
	}

	sims := make([]float64, len(docs))
	for i, terms := range docTerms {
		sims[i] = cosine(claimVec, weigh(terms, idf))
	}
	return sims
}

func fallback(n int) []float64 {
	sims := make([]float64, n)
	for i := range sims {
		sims[i] = fallbackSimilarity
	}
	return sims
}

func tokenize(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 2 || stopwords[tok] {
			continue
		}
		counts[tok]++
	}
	return counts
}

func weigh(terms map[string]float64, idf func(string) float64) map[string]float64 {
	vec := make(map[string]float64, len(terms))
	for term, tf := range terms {
		vec[term] = tf * idf(term)
	}
	return vec
}

func norm(vec map[string]float64) float64 {
	sum := 0.0
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func cosine(a, b map[string]float64) float64 {
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	dot := 0.0
	for term, w := range a {
		dot += w * b[term]
	}
	return dot / (na * nb)
}
