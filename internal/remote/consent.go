package remote

import (
	"context"
	"fmt"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// ListConsentHistories returns the full remote consent collection ordered
// by consent date descending.
func (s *Store) ListConsentHistories(ctx context.Context) ([]schema.ConsentHistory, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, line_username, consent_given, consent_date, COALESCE(created_at, '') FROM consent_histories ORDER BY consent_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query consent histories: %w", err)
	}
	defer rows.Close()

	var histories []schema.ConsentHistory
	for rows.Next() {
		var h schema.ConsentHistory
		var given int
		if err := rows.Scan(&h.ID, &h.LineUsername, &given, &h.ConsentDate, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consent history: %w", err)
		}
		h.ConsentGiven = given != 0
		histories = append(histories, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consent histories: %w", err)
	}

	return histories, nil
}

// UpsertConsentHistories writes the batch keyed by id, incoming row wins.
func (s *Store) UpsertConsentHistories(ctx context.Context, histories []schema.ConsentHistory) error {
	if len(histories) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO consent_histories (id, line_username, consent_given, consent_date, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		line_username = excluded.line_username,
		consent_given = excluded.consent_given,
		consent_date = excluded.consent_date,
		created_at = excluded.created_at
	`

	for _, h := range histories {
		given := 0
		if h.ConsentGiven {
			given = 1
		}
		if _, err := tx.ExecContext(ctx, query, h.ID, h.LineUsername, given, h.ConsentDate, h.CreatedAt); err != nil {
			return fmt.Errorf("failed to upsert consent history %s: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit consent batch: %w", err)
	}

	return nil
}
