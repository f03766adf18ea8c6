package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xavierca1/leadfocus/internal/entity"
)

type ScoreRepository struct {
	DB *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// Upsert overwrites the last computed score. Scores are never versioned.
func (r *ScoreRepository) Upsert(ctx context.Context, score *entity.PriorityScore) error {
	breakdown, err := json.Marshal(score.Breakdown)
	if err != nil {
		return fmt.Errorf("encoding score breakdown: %w", err)
	}

	query := `
		INSERT INTO priority_scores (user_id, lead_id, score, tier, input_fingerprint, computed_at, breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, lead_id)
		DO UPDATE SET
			score = EXCLUDED.score,
			tier = EXCLUDED.tier,
			input_fingerprint = EXCLUDED.input_fingerprint,
			computed_at = EXCLUDED.computed_at,
			breakdown = EXCLUDED.breakdown
	`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		score.UserID,
		score.LeadID,
		score.Score,
		score.Tier,
		score.InputFingerprint,
		score.ComputedAt,
		breakdown,
	)
	if err != nil {
		return fmt.Errorf("upserting priority score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) FindByUserAndLead(ctx context.Context, userID, leadID string) (*entity.PriorityScore, error) {
	query := `
		SELECT user_id, lead_id, score, tier, input_fingerprint, computed_at, breakdown
		FROM priority_scores
		WHERE user_id = $1 AND lead_id = $2
	`

	var score entity.PriorityScore
	var breakdown []byte

	err := r.DB.QueryRowContext(ctx, query, userID, leadID).Scan(
		&score.UserID,
		&score.LeadID,
		&score.Score,
		&score.Tier,
		&score.InputFingerprint,
		&score.ComputedAt,
		&breakdown,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding priority score: %w", err)
	}

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &score.Breakdown); err != nil {
			return nil, fmt.Errorf("decoding score breakdown: %w", err)
		}
	}
	return &score, nil
}
