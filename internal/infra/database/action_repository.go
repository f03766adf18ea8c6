package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xavierca1/leadfocus/internal/entity"
)

type ActionRepository struct {
	DB *sql.DB
}

func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{DB: db}
}

// Append inserts the event. ON CONFLICT DO NOTHING on the id makes retries
// idempotent: replaying the same event is a no-op, never a duplicate.
func (r *ActionRepository) Append(ctx context.Context, action *entity.LeadAction) error {
	metadata, err := json.Marshal(action.Metadata)
	if err != nil {
		return fmt.Errorf("encoding action metadata: %w", err)
	}

	query := `
		INSERT INTO lead_actions (id, user_id, lead_id, action_type, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		action.ID,
		action.UserID,
		action.LeadID,
		action.ActionType,
		metadata,
		action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("appending lead action: %w", err)
	}
	return nil
}

func (r *ActionRepository) ListRecentByLead(ctx context.Context, userID, leadID string, limit int) ([]entity.LeadAction, error) {
	query := `
		SELECT id, user_id, lead_id, action_type, metadata, created_at
		FROM lead_actions
		WHERE user_id = $1 AND lead_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, userID, leadID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing lead actions: %w", err)
	}
	defer rows.Close()

	var actions []entity.LeadAction
	for rows.Next() {
		var action entity.LeadAction
		var metadata []byte
		if err := rows.Scan(
			&action.ID,
			&action.UserID,
			&action.LeadID,
			&action.ActionType,
			&metadata,
			&action.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lead action: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &action.Metadata); err != nil {
				return nil, fmt.Errorf("decoding action metadata: %w", err)
			}
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

func (r *ActionRepository) ListContactedLeadIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT lead_id
		FROM lead_actions
		WHERE user_id = $1 AND action_type = $2 AND created_at >= $3
	`

	rows, err := r.DB.QueryContext(ctx, query, userID, entity.ActionContacted, since)
	if err != nil {
		return nil, fmt.Errorf("listing contacted leads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning lead id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
