package registry

// Pre-seeded trusted sources with high initial scores.
var trustedSeeds = map[string]float64{
	// Global Tier 1 News
	"reuters.com":     95,
	"apnews.com":      95,
	"bbc.com":         92,
	"bbc.co.uk":       92,
	"nytimes.com":     90,
	"theguardian.com": 88,
	"wsj.com":         90,
	"bloomberg.com":   90,
	"npr.org":         88,
	"aljazeera.com":   85,

	// Fact-checking sites (highest trust)
	"factcheck.org":     98,
	"snopes.com":        97,
	"politifact.com":    97,
	"fullfact.org":      96,
	"checkyourfact.com": 92,

	// Science & Tech
	"nature.com":             95,
	"scientificamerican.com": 92,
	"sciencenews.org":        90,
	"techcrunch.com":         80,
	"wired.com":              82,
	"theverge.com":           78,
	"arstechnica.com":        85,

	// India News
	"ndtv.com":           82,
	"thehindu.com":       85,
	"indianexpress.com":  83,
	"hindustantimes.com": 80,
	"livemint.com":       82,
	"scroll.in":          78,
	"thewire.in":         75,

	// Other Major
	"cnn.com":            78,
	"washingtonpost.com": 85,
	"usatoday.com":       80,
	"time.com":           82,
	"cnbc.com":           82,
	"dw.com":             85,
	"france24.com":       83,
}

// Known unreliable sources (start with low scores).
var unreliableSeeds = map[string]float64{
	"infowars.com":             10,
	"naturalnews.com":          15,
	"beforeitsnews.com":        10,
	"worldnewsdailyreport.com": 5, // satire site often shared as real
}
