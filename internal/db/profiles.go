package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// profileRow mirrors the profiles table. JSONB columns are kept raw.
type profileRow struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Location       *string
	LinkedIn       *string
	GitHub         *string
	Portfolio      *string
	Summary        *string
	WorkExperience []byte
	Education      []byte
	Skills         []byte
	Certifications []byte
}

// GetProfile loads the user's stored profile as a profile record keyed by
// column name. It returns nil, nil when the user has no profile.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (types.Profile, error) {
	var row profileRow
	err := db.pool.QueryRow(ctx,
		`SELECT first_name, last_name, email, phone, location, linkedin, github,
		        portfolio, summary, work_experience, education, skills, certifications
		 FROM profiles WHERE id = $1`,
		userID,
	).Scan(&row.FirstName, &row.LastName, &row.Email, &row.Phone, &row.Location,
		&row.LinkedIn, &row.GitHub, &row.Portfolio, &row.Summary,
		&row.WorkExperience, &row.Education, &row.Skills, &row.Certifications)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p, err := row.toProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", userID, err)
	}
	return p, nil
}

// SaveProfile creates or replaces the user's profile from a profile record.
// List fields are stored as JSONB; a missing work_experience is stored as [].
func (db *DB) SaveProfile(ctx context.Context, userID uuid.UUID, p types.Profile) error {
	lists := map[string][]byte{}
	for _, key := range []string{"work_experience", "education", "skills", "certifications"} {
		v, ok := p[key]
		if !ok || v == nil {
			v = []any{}
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		lists[key] = b
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (id, first_name, last_name, email, phone, location, linkedin,
		                       github, portfolio, summary, work_experience, education, skills, certifications)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO UPDATE SET
		   first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
		   email = EXCLUDED.email, phone = EXCLUDED.phone, location = EXCLUDED.location,
		   linkedin = EXCLUDED.linkedin, github = EXCLUDED.github, portfolio = EXCLUDED.portfolio,
		   summary = EXCLUDED.summary, work_experience = EXCLUDED.work_experience,
		   education = EXCLUDED.education, skills = EXCLUDED.skills,
		   certifications = EXCLUDED.certifications, updated_at = NOW()`,
		userID, p.String("first_name"), p.String("last_name"), p.String("email"),
		p.String("phone"), p.String("location"), p.String("linkedin"), p.String("github"),
		p.String("portfolio"), p.String("summary"),
		lists["work_experience"], lists["education"], lists["skills"], lists["certifications"],
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the user's profile.
func (db *DB) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// toProfile keeps only populated columns. A NULL work_experience stays absent
// so the extractor reports an empty experience list.
func (r profileRow) toProfile() (types.Profile, error) {
	p := types.Profile{}
	for key, v := range map[string]*string{
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"email":      r.Email,
		"phone":      r.Phone,
		"location":   r.Location,
		"linkedin":   r.LinkedIn,
		"github":     r.GitHub,
		"portfolio":  r.Portfolio,
		"summary":    r.Summary,
	} {
		if v != nil && *v != "" {
			p[key] = *v
		}
	}

	for key, raw := range map[string][]byte{
		"work_experience": r.WorkExperience,
		"education":       r.Education,
		"skills":          r.Skills,
		"certifications":  r.Certifications,
	} {
		if len(raw) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
		if v != nil {
			p[key] = v
		}
	}
	return p, nil
}
