package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// GetSettings returns the user's provider preference and API keys.
// It returns nil, nil when the user has no settings row.
func (db *DB) GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error) {
	var preferred, openAIKey, groqKey *string
	err := db.pool.QueryRow(ctx,
		`SELECT preferred_provider, openai_api_key, groq_api_key
		 FROM user_settings WHERE user_id = $1`,
		userID,
	).Scan(&preferred, &openAIKey, &groqKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &types.UserSettings{
		PreferredProvider: deref(preferred),
		OpenAIKey:         deref(openAIKey),
		GroqKey:           deref(groqKey),
	}, nil
}

// UpsertSettings creates or replaces the user's settings row.
func (db *DB) UpsertSettings(ctx context.Context, userID uuid.UUID, s types.UserSettings) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_settings (user_id, preferred_provider, openai_api_key, groq_api_key)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		 ON CONFLICT (user_id) DO UPDATE SET
		   preferred_provider = EXCLUDED.preferred_provider,
		   openai_api_key = EXCLUDED.openai_api_key,
		   groq_api_key = EXCLUDED.groq_api_key,
		   updated_at = NOW()`,
		userID, s.PreferredProvider, s.OpenAIKey, s.GroqKey,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// DeleteSettings removes the user's settings row.
func (db *DB) DeleteSettings(ctx context.Context, userID uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM user_settings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
