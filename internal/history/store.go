package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/apidash/internal/db"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store provides access to the fetch log.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record inserts a new entry. ID and CreatedAt are filled in when empty.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.Source == "" {
		e.Source = SourceHTTP
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetches (id, panel, ok, invalid, message, error, source, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Panel,
		boolToInt(e.OK),
		boolToInt(e.Invalid),
		e.Message,
		e.Error,
		string(e.Source),
		e.DurationMS,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting fetch: %w", err)
	}
	return e, nil
}

// Recent returns the latest entries, newest first. panel filters by panel
// ID when non-empty.
func (s *Store) Recent(ctx context.Context, panel string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, panel, ok, invalid, message, error, source, duration_ms, created_at
		FROM fetches`
	var args []any
	if panel != "" {
		query += ` WHERE panel = ?`
		args = append(args, panel)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fetches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Stats returns per-panel success and failure counts, ordered by panel ID.
func (s *Store) Stats(ctx context.Context) ([]PanelStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT panel, SUM(ok), SUM(1 - ok), AVG(duration_ms)
		FROM fetches
		GROUP BY panel
		ORDER BY panel`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var stats []PanelStats
	for rows.Next() {
		var ps PanelStats
		if err := rows.Scan(&ps.Panel, &ps.Successes, &ps.Failures, &ps.AvgDurationMS); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		stats = append(stats, ps)
	}
	return stats, rows.Err()
}

// Prune deletes entries older than the given time and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fetches WHERE created_at < ?`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning fetches: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e         Entry
		ok        int
		invalid   int
		source    string
		createdAt sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Panel, &ok, &invalid, &e.Message, &e.Error, &source, &e.DurationMS, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning fetch: %w", err)
	}
	e.OK = ok == 1
	e.Invalid = invalid == 1
	e.Source = Source(source)
	if createdAt.Valid {
		t, err := parseTime(createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt.String, err)
		}
		e.CreatedAt = t
	}
	return &e, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
