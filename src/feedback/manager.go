package feedback

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veritas-labs/veritas/src/pipeline"
	"github.com/veritas-labs/veritas/src/registry"
	"gorm.io/gorm"
)

const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
)

var ErrBadFeedback = errors.New("feedback must be 'correct' or 'incorrect'")

// Report is one persisted user judgment on a verification result.
type Report struct {
	ID            string `gorm:"primaryKey;size:36"`
	Claim         string `gorm:"type:text;not null"`
	SystemVerdict string `gorm:"size:32"`
	UserFeedback  string `gorm:"size:16;not null"`
	Confidence    int
	CreatedAt     time.Time
}

// Stats is the community accuracy summary.
type Stats struct {
	Accuracy         float64 `json:"accuracy"`
	TotalReports     int64   `json:"total_reports"`
	IncorrectReports int64   `json:"incorrect_reports"`
}

// Manager records user feedback and folds it back into source credibility.
// A nil db keeps the reinforcement loop working without report persistence.
type Manager struct {
	db  *gorm.DB
	reg *registry.Registry
}

func New(db *gorm.DB, reg *registry.Registry) *Manager {
	return &Manager{db: db, reg: reg}
}

// Submit stores the report and reinforces the registry. When the user
// confirms the verdict, the discovered sources are reported as whatever the
// verdict said they were; when the user rejects it, the logic flips.
func (m *Manager) Submit(result *pipeline.Result, userFeedback string) (string, error) {
	if userFeedback != FeedbackCorrect && userFeedback != FeedbackIncorrect {
		return "", ErrBadFeedback
	}

	isFakeVerdict := strings.Contains(result.Verdict, "Fake") || strings.Contains(result.Verdict, "False")
	reportAsFake := isFakeVerdict
	if userFeedback == FeedbackIncorrect {
		reportAsFake = !isFakeVerdict
	}
	m.reinforce(result, reportAsFake)

	report := Report{
		ID:            uuid.NewString(),
		Claim:         result.Claim,
		SystemVerdict: result.Verdict,
		UserFeedback:  userFeedback,
		Confidence:    result.Confidence,
		CreatedAt:     time.Now(),
	}
	if m.db != nil {
		if err := m.db.Create(&report).Error; err != nil {
			log.Printf("feedback: could not persist report: %v", err)
		}
	}
	return report.ID, nil
}

func (m *Manager) reinforce(result *pipeline.Result, asFake bool) {
	if m.reg == nil || result.Stages.Discovery == nil {
		return
	}
	for _, src := range result.Stages.Discovery.Sources {
		if src.URL == "" {
			continue
		}
		if asFake {
			m.reg.ReportFake(src.URL)
		} else {
			m.reg.ReportTrue(src.URL)
		}
	}
}

// Stats computes community accuracy over all stored reports. An empty table
// reads as 100% accurate.
func (m *Manager) Stats() (Stats, error) {
	if m.db == nil {
		return Stats{Accuracy: 100}, nil
	}

	var total, correct int64
	if err := m.db.Model(&Report{}).Count(&total).Error; err != nil {
		return Stats{}, err
	}
	if total == 0 {
		return Stats{Accuracy: 100}, nil
	}
	if err := m.db.Model(&Report{}).Where("user_feedback = ?", FeedbackCorrect).Count(&correct).Error; err != nil {
		return Stats{}, err
	}

	accuracy := float64(correct) / float64(total) * 100
	return Stats{
		Accuracy:         math.Round(accuracy*10) / 10,
		TotalReports:     total,
		IncorrectReports: total - correct,
	}, nil
}
