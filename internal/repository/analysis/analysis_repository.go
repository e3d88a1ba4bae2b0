// File: internal/repository/analysis/analysis_repository.go

package analysis

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "time"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/salucare/triage-console/internal/domain"
)

var ErrNotCached = errors.New("analysis not cached")

// analysisRecord is one cached backend analysis, keyed by session id.
type analysisRecord struct {
    SessionID string `gorm:"primarykey;size:64"`
    Payload   string `gorm:"not null"`
    UpdatedAt time.Time
}

func (analysisRecord) TableName() string { return "ai_analyses" }

type gormAnalysisRepository struct {
    db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) Repository {
    return &gormAnalysisRepository{db: db}
}

func (r *gormAnalysisRepository) Save(ctx context.Context, sessionID string, analysis *domain.AIAnalysis) error {
    if sessionID == "" {
        return errors.New("session ID is required")
    }
    if analysis == nil {
        return errors.New("analysis cannot be nil")
    }

    payload, err := json.Marshal(analysis)
    if err != nil {
        return errors.New("could not encode analysis")
    }

    record := analysisRecord{SessionID: sessionID, Payload: string(payload)}
    err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "session_id"}},
        UpdateAll: true,
    }).Create(&record).Error
    if err != nil {
        log.Printf("[AnalysisRepository] Database error saving analysis for session %s: %v", sessionID, err)
        return errors.New("database error saving analysis")
    }
    return nil
}

func (r *gormAnalysisRepository) Find(ctx context.Context, sessionID string) (*domain.AIAnalysis, error) {
    if sessionID == "" {
        return nil, errors.New("session ID is required")
    }

    var record analysisRecord
    err := r.db.WithContext(ctx).First(&record, "session_id = ?", sessionID).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrNotCached
    }
    if err != nil {
        log.Printf("[AnalysisRepository] Database error finding analysis for session %s: %v", sessionID, err)
        return nil, errors.New("database error finding analysis")
    }

    var analysis domain.AIAnalysis
    if err := json.Unmarshal([]byte(record.Payload), &analysis); err != nil {
        // Treat a corrupt row as a miss; the next fetch overwrites it.
        log.Printf("[AnalysisRepository] Corrupt analysis payload for session %s: %v", sessionID, err)
        return nil, ErrNotCached
    }
    return &analysis, nil
}

func (r *gormAnalysisRepository) Delete(ctx context.Context, sessionID string) error {
    if sessionID == "" {
        return errors.New("session ID is required")
    }
    err := r.db.WithContext(ctx).Delete(&analysisRecord{}, "session_id = ?", sessionID).Error
    if err != nil {
        log.Printf("[AnalysisRepository] Database error deleting analysis for session %s: %v", sessionID, err)
        return errors.New("database error deleting analysis")
    }
    return nil
}

// Migrate creates the ai_analyses table.
func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(&analysisRecord{})
}
