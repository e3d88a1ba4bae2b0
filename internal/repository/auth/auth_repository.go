// File: internal/repository/auth/auth_repository.go

package auth

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

var ErrNoSession = errors.New("no stored auth session")

// authRecord is the single-row sqlite persistence of the operator session.
// The token is backend-issued and stored verbatim; the profile rides along
// as JSON so backend field additions never require a migration here.
type authRecord struct {
    ID        uint   `gorm:"primarykey"`
    Token     string `gorm:"not null"`
    UserJSON  string `gorm:"not null"`
    UpdatedAt time.Time
}

func (authRecord) TableName() string { return "auth_sessions" }

type gormAuthRepository struct {
    db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) Repository {
    return &gormAuthRepository{db: db}
}

// Save replaces the stored session in one transaction so a failed write can
// never leave a token without its user, or vice versa.
func (r *gormAuthRepository) Save(ctx context.Context, session *domain.AuthSession) error {
    if session == nil || session.Token == "" {
        return errors.New("session with a token is required")
    }

    userJSON, err := json.Marshal(session.User)
    if err != nil {
        return errors.New("could not encode user profile")
    }

    record := authRecord{ID: 1, Token: session.Token, UserJSON: string(userJSON)}
    err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "id"}},
        UpdateAll: true,
    }).Create(&record).Error
    if err != nil {
        log.Printf("[AuthRepository] Database error saving session: %v", err)
        return errors.New("database error saving auth session")
    }
    return nil
}

func (r *gormAuthRepository) Load(ctx context.Context) (*domain.AuthSession, error) {
    var record authRecord
    err := r.db.WithContext(ctx).First(&record, 1).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrNoSession
    }
    if err != nil {
        log.Printf("[AuthRepository] Database error loading session: %v", err)
        return nil, errors.New("database error loading auth session")
    }

    var user domain.AdminUser
    if err := json.Unmarshal([]byte(record.UserJSON), &user); err != nil {
        // A corrupt profile row is as good as no session.
        log.Printf("[AuthRepository] Corrupt user profile in store: %v", err)
        return nil, ErrNoSession
    }
    return &domain.AuthSession{Token: record.Token, User: user}, nil
}

func (r *gormAuthRepository) Clear(ctx context.Context) error {
    err := r.db.WithContext(ctx).Delete(&authRecord{}, 1).Error
    if err != nil {
        log.Printf("[AuthRepository] Database error clearing session: %v", err)
        return errors.New("database error clearing auth session")
    }
    return nil
}

// Migrate creates the auth_sessions table.
func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(&authRecord{})
}
