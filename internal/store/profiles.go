package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// DefaultProfileID identifies the single sender profile row. The tool is
// single-user, so the row key is fixed.
const DefaultProfileID = "default"

// GetSenderProfile loads the sender profile, normalized. Rows written
// before a normalization rule change are re-normalized on read and the
// cleaned form is written back. Returns (nil, nil) when no profile has
// been saved yet.
func (s *Store) GetSenderProfile(ctx context.Context, id string) (*types.SenderProfile, error) {
	if id == "" {
		id = DefaultProfileID
	}

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM sender_profiles WHERE id = $1`,
		id,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sender profile: %w", err)
	}

	var stored types.SenderProfile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode sender profile: %w", err)
	}

	profile := normalize.SenderProfile(stored)
	if profileChanged(stored, profile) {
		// A write-back failure leaves a stale row, not a bad response.
		_ = s.SaveSenderProfile(ctx, id, profile)
	}
	return &profile, nil
}

// profileChanged reports whether normalization altered the stored profile.
// Postgres re-encodes JSONB, so the raw row bytes are no basis for a change
// check; the canonical encodings of the two structs are.
func profileChanged(stored, normalized types.SenderProfile) bool {
	storedJSON, storedErr := json.Marshal(stored)
	normalizedJSON, normalizedErr := json.Marshal(normalized)
	if storedErr != nil || normalizedErr != nil {
		return false
	}
	return !bytes.Equal(normalizedJSON, storedJSON)
}

// SaveSenderProfile upserts the sender profile.
func (s *Store) SaveSenderProfile(ctx context.Context, id string, profile types.SenderProfile) error {
	if id == "" {
		id = DefaultProfileID
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal sender profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sender_profiles (id, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET profile = $2, updated_at = NOW()`,
		id, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save sender profile: %w", err)
	}
	return nil
}
