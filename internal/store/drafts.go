package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-drafter/internal/types"
)

// Draft is a persisted generation outcome.
type Draft struct {
	ID          uuid.UUID                `json:"id"`
	TargetName  string                   `json:"target_name"`
	Variants    []types.Variant          `json:"variants"`
	Validations []types.ValidationResult `json:"validations"`
	CreatedAt   time.Time                `json:"created_at"`
}

// SaveDraft persists a generation outcome and returns its ID.
func (s *Store) SaveDraft(ctx context.Context, targetName string, variants []types.Variant, validations []types.ValidationResult) (uuid.UUID, error) {
	id := uuid.New()

	variantsJSON, err := json.Marshal(variants)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal variants: %w", err)
	}
	validationsJSON, err := json.Marshal(validations)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal validations: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO drafts (id, target_name, variants, validations)
		 VALUES ($1, $2, $3, $4)`,
		id, targetName, variantsJSON, validationsJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return id, nil
}

// ListDrafts returns the most recent drafts, newest first.
func (s *Store) ListDrafts(ctx context.Context, limit int) ([]Draft, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, target_name, variants, validations, created_at
		 FROM drafts
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var (
			d              Draft
			variantsRaw    []byte
			validationsRaw []byte
		)
		if err := rows.Scan(&d.ID, &d.TargetName, &variantsRaw, &validationsRaw, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		if err := json.Unmarshal(variantsRaw, &d.Variants); err != nil {
			return nil, fmt.Errorf("failed to decode draft variants: %w", err)
		}
		if err := json.Unmarshal(validationsRaw, &d.Validations); err != nil {
			return nil, fmt.Errorf("failed to decode draft validations: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drafts: %w", err)
	}
	return drafts, nil
}
