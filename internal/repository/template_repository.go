package repository

import (
	"context"

	"gorm.io/gorm"
)

// TemplateRepository stores each user's custom moment templates as a single
// JSON payload.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// LoadPayload returns the stored payload for the user, or nil when the user
// has never saved any custom templates.
func (r *TemplateRepository) LoadPayload(ctx context.Context, userID int64) ([]byte, error) {
	var row struct {
		Payload []byte
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT payload
		FROM moment_templates
		WHERE user_id = ?
	`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

// SavePayload upserts the user's payload.
func (r *TemplateRepository) SavePayload(ctx context.Context, userID int64, payload []byte) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO moment_templates (user_id, payload, updated_at)
		VALUES (?, ?::jsonb, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET payload = EXCLUDED.payload,
		    updated_at = NOW()
	`, userID, string(payload)).Error
}
