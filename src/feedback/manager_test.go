package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritas-labs/veritas/src/pipeline"
	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/registry"
)

func resultWithSources(verdict string, urls ...string) *pipeline.Result {
	discovery := &pipeline.DiscoveryStage{}
	for _, u := range urls {
		discovery.Sources = append(discovery.Sources, providers.Source{URL: u})
	}
	return &pipeline.Result{
		Claim:      "some claim",
		Verdict:    verdict,
		Confidence: 75,
		Stages:     pipeline.Stages{Discovery: discovery},
	}
}

func TestSubmitRejectsUnknownFeedback(t *testing.T) {
	m := New(nil, registry.New(nil))

	_, err := m.Submit(resultWithSources("Likely Fake"), "maybe")
	assert.ErrorIs(t, err, ErrBadFeedback)
}

func TestSubmitConfirmedFakeReportsSourcesFake(t *testing.T) {
	reg := registry.New(nil)
	m := New(nil, reg)

	url := "https://spreader.example/story"
	reg.GetScore(url) // registered at 100

	id, err := m.Submit(resultWithSources("Likely Fake", url), FeedbackCorrect)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	assert.Equal(t, 50.0, reg.GetScore(url))
}

func TestSubmitRejectedFakeReportsSourcesTrue(t *testing.T) {
	reg := registry.New(nil)
	m := New(nil, reg)

	url := "https://vindicated.example/story"
	reg.GetScore(url)
	reg.ReportFake(url) // down to 50 before the user weighs in

	_, err := m.Submit(resultWithSources("Likely Fake", url), FeedbackIncorrect)
	require.NoError(t, err)

	assert.Equal(t, 75.0, reg.GetScore(url))
}

func TestSubmitConfirmedRealReportsSourcesTrue(t *testing.T) {
	reg := registry.New(nil)
	m := New(nil, reg)

	url := "https://accurate.example/story"
	reg.GetScore(url)
	reg.ReportFake(url) // 50

	_, err := m.Submit(resultWithSources("Verified Real", url), FeedbackCorrect)
	require.NoError(t, err)

	assert.Equal(t, 75.0, reg.GetScore(url))
}

func TestSubmitSkipsSourcesWithoutURL(t *testing.T) {
	reg := registry.New(nil)
	m := New(nil, reg)
	before := reg.Len()

	_, err := m.Submit(resultWithSources("Likely Fake", ""), FeedbackCorrect)
	require.NoError(t, err)
	assert.Equal(t, before, reg.Len())
}

func TestStatsWithoutDatabase(t *testing.T) {
	m := New(nil, nil)

	stats, err := m.Stats()
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.Accuracy)
	assert.Zero(t, stats.TotalReports)
}
