// Package remote provides the optional remote tier of the journal: a SQL
// database reached through database/sql, either an embedded SQLite file or
// a remote libSQL URL.
//
// The reconciliation layer's contract with this store is at the
// query/result level: select with filter predicates, upsert with conflict
// target id (incoming row always wins), and filtered deletes that report
// affected-row counts. Schema enforcement beyond that contract stays on
// the server side.
//
// Tables:
//   - users: id, line_username
//   - diary_entries: canonical DiaryRecord fields + user_id
//   - consent_histories: id, line_username, consent_given, consent_date
//   - messages: chat_room_id, content, sender_id|counselor_id, is_counselor
package remote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jinjinsansan/kanjou/internal/schema"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	_ "github.com/tursodatabase/go-libsql"
)

// Store wraps the remote database connection.
type Store struct {
	conn *sql.DB
	url  string
}

// Open connects to the remote store. URLs beginning with libsql:// are
// dialed with the libSQL driver; anything else is treated as an embedded
// SQLite file path.
//
// The caller MUST call Close() when done.
func Open(url string) (*Store, error) {
	driver := "sqlite3"
	connStr := url
	if strings.HasPrefix(url, "libsql://") {
		driver = "libsql"
	} else if !strings.HasPrefix(url, "file:") {
		connStr = "file:" + url
	}

	conn, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote store: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping remote store: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{conn: conn, url: url}

	if driver == "sqlite3" {
		if _, err := s.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if _, err := s.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close remote store: %w", err)
	}
	s.conn = nil
	return nil
}

// InitSchema creates the tables and indexes if they don't exist.
// Idempotent - safe to call multiple times.
func (s *Store) InitSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		line_username TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS diary_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		emotion TEXT NOT NULL,
		event TEXT NOT NULL DEFAULT '',
		realization TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		self_esteem_score INTEGER,
		worthlessness_score INTEGER,
		counselor_memo TEXT,
		is_visible_to_user INTEGER,
		counselor_name TEXT,
		assigned_counselor TEXT,
		urgency_level TEXT,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS consent_histories (
		id TEXT PRIMARY KEY,
		line_username TEXT NOT NULL,
		consent_given INTEGER NOT NULL DEFAULT 0,
		consent_date TEXT NOT NULL,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		chat_room_id TEXT NOT NULL,
		content TEXT NOT NULL,
		sender_id TEXT,
		counselor_id TEXT,
		is_counselor INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_diary_user ON diary_entries(user_id);
	CREATE INDEX IF NOT EXISTS idx_diary_date ON diary_entries(date);
	CREATE INDEX IF NOT EXISTS idx_consent_date ON consent_histories(consent_date);
	CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(chat_room_id);
	`

	if _, err := s.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// UpsertDiaries writes the batch of canonical records keyed by id.
// On conflict the incoming row overwrites the existing one; there is no
// field-level merge. The whole batch runs in one transaction so a failure
// leaves the remote store unchanged.
func (s *Store) UpsertDiaries(ctx context.Context, records []*schema.DiaryRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO diary_entries (
		id, user_id, date, emotion, event, realization, created_at,
		self_esteem_score, worthlessness_score, counselor_memo,
		is_visible_to_user, counselor_name, assigned_counselor, urgency_level
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		user_id = excluded.user_id,
		date = excluded.date,
		emotion = excluded.emotion,
		event = excluded.event,
		realization = excluded.realization,
		created_at = excluded.created_at,
		self_esteem_score = excluded.self_esteem_score,
		worthlessness_score = excluded.worthlessness_score,
		counselor_memo = excluded.counselor_memo,
		is_visible_to_user = excluded.is_visible_to_user,
		counselor_name = excluded.counselor_name,
		assigned_counselor = excluded.assigned_counselor,
		urgency_level = excluded.urgency_level
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid record %s: %w", rec.ID, err)
		}
		_, err := stmt.ExecContext(ctx,
			rec.ID,
			rec.UserID,
			rec.Date,
			rec.Emotion,
			rec.Event,
			rec.Realization,
			rec.CreatedAt,
			intPtrToNull(rec.SelfEsteemScore),
			intPtrToNull(rec.WorthlessnessScore),
			strPtrToNull(rec.CounselorMemo),
			boolPtrToNull(rec.IsVisibleToUser),
			strPtrToNull(rec.CounselorName),
			strPtrToNull(rec.AssignedCounselor),
			strPtrToNull(rec.UrgencyLevel),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert diary %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert batch: %w", err)
	}

	return nil
}

// DeleteDiariesMatching removes every diary whose event or realization
// contains one of the marker substrings, in a single query. Returns the
// number of rows removed.
func (s *Store) DeleteDiariesMatching(ctx context.Context, markers []string) (int, error) {
	if len(markers) == 0 {
		return 0, nil
	}

	var conditions []string
	var args []interface{}
	for _, marker := range markers {
		pattern := "%" + marker + "%"
		conditions = append(conditions, "event LIKE ?", "realization LIKE ?")
		args = append(args, pattern, pattern)
	}

	query := "DELETE FROM diary_entries WHERE " + strings.Join(conditions, " OR ")
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matching diaries: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted diaries: %w", err)
	}
	return int(n), nil
}

// DeleteDiariesByUser removes all diaries owned by the user.
// Returns the number of rows removed.
func (s *Store) DeleteDiariesByUser(ctx context.Context, userID string) (int, error) {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM diary_entries WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete diaries for user %s: %w", userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted diaries: %w", err)
	}
	return int(n), nil
}

// DiaryCount returns the total number of diary rows.
func (s *Store) DiaryCount(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM diary_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count diaries: %w", err)
	}
	return count, nil
}

// GetDiaryByID retrieves a single diary row.
// Returns sql.ErrNoRows if the record is not found.
func (s *Store) GetDiaryByID(ctx context.Context, id string) (*schema.DiaryRecord, error) {
	query := `
	SELECT id, user_id, date, emotion, event, realization, created_at,
	       self_esteem_score, worthlessness_score, counselor_memo,
	       is_visible_to_user, counselor_name, assigned_counselor, urgency_level
	FROM diary_entries
	WHERE id = ?
	`

	row := s.conn.QueryRowContext(ctx, query, id)

	var rec schema.DiaryRecord
	var selfEsteem, worthlessness sql.NullInt64
	var memo, name, assigned, urgency sql.NullString
	var visible sql.NullInt64

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.Emotion,
		&rec.Event,
		&rec.Realization,
		&rec.CreatedAt,
		&selfEsteem,
		&worthlessness,
		&memo,
		&visible,
		&name,
		&assigned,
		&urgency,
	)
	if err != nil {
		return nil, err
	}

	rec.SelfEsteemScore = nullToIntPtr(selfEsteem)
	rec.WorthlessnessScore = nullToIntPtr(worthlessness)
	rec.CounselorMemo = nullToStrPtr(memo)
	rec.CounselorName = nullToStrPtr(name)
	rec.AssignedCounselor = nullToStrPtr(assigned)
	rec.UrgencyLevel = nullToStrPtr(urgency)
	if visible.Valid {
		b := visible.Int64 != 0
		rec.IsVisibleToUser = &b
	}

	return &rec, nil
}

func intPtrToNull(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func strPtrToNull(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func boolPtrToNull(p *bool) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	v := int64(0)
	if *p {
		v = 1
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullToIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
