package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://www.reuters.com/article/x", "reuters.com"},
		{"https://reuters.com/article/x", "reuters.com"},
		{"reuters.com/article/x", "reuters.com"},
		{"HTTPS://WWW.Reuters.COM/article", "reuters.com"},
		{"http://sub.example.co.uk/path?q=1", "sub.example.co.uk"},
		{"", ""},
		{"   ", ""},
		{"https://not a url", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractDomain(tc.raw), "input %q", tc.raw)
	}
}

func TestSeededScores(t *testing.T) {
	reg := New(nil)

	assert.Equal(t, 95.0, reg.GetScore("https://www.reuters.com/world"))
	assert.Equal(t, 10.0, reg.GetScore("https://infowars.com/story"))
	assert.Equal(t, len(trustedSeeds)+len(unreliableSeeds), reg.Len())
}

func TestGetScoreRegistersUnseenDomains(t *testing.T) {
	reg := New(nil)
	before := reg.Len()

	assert.Equal(t, 100.0, reg.GetScore("https://fresh-outlet.example/news"))
	assert.Equal(t, before+1, reg.Len())

	// Second lookup reuses the entry.
	assert.Equal(t, 100.0, reg.GetScore("https://fresh-outlet.example/other"))
	assert.Equal(t, before+1, reg.Len())

	info := reg.GetInfo("https://fresh-outlet.example")
	require.NotNil(t, info)
	assert.Equal(t, CategoryNew, info.Category)
}

func TestGetScoreMalformedURLIsNeutral(t *testing.T) {
	reg := New(nil)
	before := reg.Len()

	assert.Equal(t, 50.0, reg.GetScore("https://bad url with spaces"))
	assert.Equal(t, 50.0, reg.GetScore(""))
	assert.Equal(t, before, reg.Len())
}

func TestReportFakeHalvesScore(t *testing.T) {
	reg := New(nil)
	url := "https://halving.example/a"
	reg.GetScore(url)

	reg.ReportFake(url)
	assert.Equal(t, 50.0, reg.GetScore(url))

	reg.ReportFake(url)
	assert.Equal(t, 25.0, reg.GetScore(url))

	// Floor at 5, never below.
	for i := 0; i < 20; i++ {
		reg.ReportFake(url)
	}
	assert.Equal(t, 5.0, reg.GetScore(url))

	info := reg.GetInfo(url)
	require.NotNil(t, info)
	assert.Equal(t, 22, info.TotalChecks)
	assert.Equal(t, 22, info.FakeCount)
	assert.Equal(t, 0, info.TrueCount)
}

func TestReportTrueHalvesGap(t *testing.T) {
	reg := New(nil)
	url := "https://recovery.example/a"
	reg.GetScore(url)
	reg.ReportFake(url) // 50

	reg.ReportTrue(url)
	assert.Equal(t, 75.0, reg.GetScore(url))

	reg.ReportTrue(url)
	assert.Equal(t, 87.5, reg.GetScore(url))

	reg.ReportTrue(url)
	assert.Equal(t, 93.75, reg.GetScore(url))

	// Approaches but never reaches 100.
	for i := 0; i < 50; i++ {
		reg.ReportTrue(url)
	}
	assert.Less(t, reg.GetScore(url), 100.0)
	assert.Greater(t, reg.GetScore(url), 99.0)
}

func TestReportTrueNeverGrantsAbsoluteTrust(t *testing.T) {
	reg := New(nil)
	url := "https://earned.example/a"
	reg.GetScore(url)
	reg.ReportFake(url) // start the climb from 50

	// Rounding to 2 decimals must never tip a sub-100 score over to 100,
	// no matter how many true reports accumulate.
	for i := 0; i < 100; i++ {
		reg.ReportTrue(url)
		assert.Less(t, reg.GetScore(url), 100.0, "after %d true reports", i+1)
	}
	assert.Equal(t, 99.99, reg.GetScore(url))
}

func TestCategoryDemotions(t *testing.T) {
	reg := New(nil)

	// Trusted domain halved below 50 becomes degraded.
	reg.ReportFake("https://reuters.com/x") // 95 -> 47.5
	info := reg.GetInfo("https://reuters.com")
	require.NotNil(t, info)
	assert.Equal(t, CategoryDegraded, info.Category)

	// New domain halved below 50 becomes unreliable.
	reg.GetScore("https://newcomer.example")
	reg.ReportFake("https://newcomer.example") // 100 -> 50, not below
	info = reg.GetInfo("https://newcomer.example")
	require.NotNil(t, info)
	assert.Equal(t, CategoryNew, info.Category)

	reg.ReportFake("https://newcomer.example") // 50 -> 25
	info = reg.GetInfo("https://newcomer.example")
	require.NotNil(t, info)
	assert.Equal(t, CategoryUnreliable, info.Category)
}

func TestCategoryRecovery(t *testing.T) {
	reg := New(nil)
	url := "https://infowars.com/x" // seeded unreliable at 10

	reg.ReportTrue(url) // 55, still unreliable
	info := reg.GetInfo(url)
	require.NotNil(t, info)
	assert.Equal(t, CategoryUnreliable, info.Category)

	reg.ReportTrue(url) // 77.5 > 60 -> recovering
	info = reg.GetInfo(url)
	require.NotNil(t, info)
	assert.Equal(t, CategoryRecovering, info.Category)

	reg.ReportTrue(url) // 88.75 > 80 -> trusted
	info = reg.GetInfo(url)
	require.NotNil(t, info)
	assert.Equal(t, CategoryTrusted, info.Category)
}

func TestWeightedCredibility(t *testing.T) {
	reg := New(nil)

	assert.Equal(t, 50.0, reg.WeightedCredibility(nil))
	assert.Equal(t, 50.0, reg.WeightedCredibility([]string{"", ""}))

	got := reg.WeightedCredibility([]string{
		"https://reuters.com/a",  // 95
		"https://infowars.com/b", // 10
		"",
	})
	assert.Equal(t, 52.5, got)
}

func TestAllSortedAndFiltered(t *testing.T) {
	reg := New(nil)

	all := reg.All(0)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	trustedOnly := reg.All(90)
	for _, info := range trustedOnly {
		assert.GreaterOrEqual(t, info.Score, 90.0)
	}
	assert.Less(t, len(trustedOnly), len(all))
}

func TestTrustedAndUnreliableLists(t *testing.T) {
	reg := New(nil)

	assert.Contains(t, reg.Trusted(), "reuters.com")
	assert.NotContains(t, reg.Trusted(), "infowars.com")
	assert.Contains(t, reg.Unreliable(), "infowars.com")
	assert.NotContains(t, reg.Unreliable(), "reuters.com")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	store := NewFileStore(path)

	reg := New(store)
	reg.ReportFake("https://reuters.com/x")
	reg.ReportTrue("https://infowars.com/y")
	reg.GetScore("https://newcomer.example/z")

	reloaded := New(store)
	assert.Equal(t, reg.Len(), reloaded.Len())
	assert.Equal(t, 47.5, reloaded.GetScore("https://reuters.com"))
	assert.Equal(t, 55.0, reloaded.GetScore("https://infowars.com"))
	assert.Equal(t, 100.0, reloaded.GetScore("https://newcomer.example"))

	info := reloaded.GetInfo("https://reuters.com")
	require.NotNil(t, info)
	assert.Equal(t, CategoryDegraded, info.Category)
	assert.Equal(t, 1, info.FakeCount)
}

func TestFileStoreMissingFileSeedsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	reg := New(NewFileStore(path))

	assert.Equal(t, len(trustedSeeds)+len(unreliableSeeds), reg.Len())
	// Seeding persists immediately.
	loaded, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Len(t, loaded, reg.Len())
}
