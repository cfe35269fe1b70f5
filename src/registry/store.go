package registry

import (
	"encoding/json"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the registry. Load returns an empty map when no prior state
// exists; Save rewrites the whole registry after every mutation.
type Store interface {
	Load() (map[string]*Entry, error)
	Save(map[string]*Entry) error
}

// FileStore keeps the registry in a single JSON file.
type FileStore struct {
	Path string
}

type fileSnapshot struct {
	Sources      map[string]*Entry `json:"sources"`
	LastUpdated  time.Time         `json:"last_updated"`
	TotalSources int               `json:"total_sources"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (map[string]*Entry, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var snap fileSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return snap.Sources, nil
}

func (s *FileStore) Save(sources map[string]*Entry) error {
	snap := fileSnapshot{
		Sources:      sources,
		LastUpdated:  time.Now(),
		TotalSources: len(sources),
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o644)
}

// SourceRecord is the MySQL row backing one registry entry.
type SourceRecord struct {
	Domain      string  `gorm:"primaryKey;size:255"`
	Score       float64 `gorm:"not null"`
	TotalChecks int
	FakeCount   int
	TrueCount   int
	LastUpdated time.Time
	Category    string `gorm:"size:16"`
}

// GormStore keeps the registry in MySQL, one row per domain.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load() (map[string]*Entry, error) {
	var records []SourceRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, err
	}
	sources := make(map[string]*Entry, len(records))
	for _, rec := range records {
		sources[rec.Domain] = &Entry{
			Score:       rec.Score,
			TotalChecks: rec.TotalChecks,
			FakeCount:   rec.FakeCount,
			TrueCount:   rec.TrueCount,
			LastUpdated: rec.LastUpdated,
			Category:    rec.Category,
		}
	}
	return sources, nil
}

func (s *GormStore) Save(sources map[string]*Entry) error {
	records := make([]SourceRecord, 0, len(sources))
	for domain, e := range sources {
		records = append(records, SourceRecord{
			Domain:      domain,
			Score:       e.Score,
			TotalChecks: e.TotalChecks,
			FakeCount:   e.FakeCount,
			TrueCount:   e.TrueCount,
			LastUpdated: e.LastUpdated,
			Category:    e.Category,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
}
