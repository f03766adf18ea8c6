package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/leadfocus/internal/entity"
)

type FocusRepository struct {
	DB *sql.DB
}

func NewFocusRepository(db *sql.DB) *FocusRepository {
	return &FocusRepository{DB: db}
}

func (r *FocusRepository) Find(ctx context.Context, userID, focusDate string) (*entity.DailyFocus, error) {
	query := `
		SELECT user_id, focus_date, lead_ids, generated_at
		FROM daily_focus
		WHERE user_id = $1 AND focus_date = $2
	`

	var focus entity.DailyFocus
	err := r.DB.QueryRowContext(ctx, query, userID, focusDate).Scan(
		&focus.UserID,
		&focus.FocusDate,
		pq.Array(&focus.LeadIDs),
		&focus.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding daily focus: %w", err)
	}
	return &focus, nil
}

// SaveIfAbsent inserts the list only when no row exists for (user, date) and
// always returns the committed row. Two concurrent builders therefore agree on
// one list: the loser's insert is a no-op and the follow-up read returns the
// winner's row.
func (r *FocusRepository) SaveIfAbsent(ctx context.Context, focus *entity.DailyFocus) (*entity.DailyFocus, error) {
	query := `
		INSERT INTO daily_focus (user_id, focus_date, lead_ids, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, focus_date) DO NOTHING
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		focus.UserID,
		focus.FocusDate,
		pq.Array(focus.LeadIDs),
		focus.GeneratedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving daily focus: %w", err)
	}

	committed, err := r.Find(ctx, focus.UserID, focus.FocusDate)
	if err != nil {
		return nil, err
	}
	if committed == nil {
		return nil, fmt.Errorf("daily focus vanished after insert for user %s on %s", focus.UserID, focus.FocusDate)
	}
	return committed, nil
}

func (r *FocusRepository) Delete(ctx context.Context, userID, focusDate string) error {
	query := `DELETE FROM daily_focus WHERE user_id = $1 AND focus_date = $2`
	if _, err := r.DB.ExecContext(ctx, query, userID, focusDate); err != nil {
		return fmt.Errorf("deleting daily focus: %w", err)
	}
	return nil
}
