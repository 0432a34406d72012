package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("analysis not found")

// Entry is one recorded analysis run.
type Entry struct {
	ID             string    `json:"id"`
	Video          string    `json:"video"`
	CreatedAt      time.Time `json:"created_at"`
	Frames         int       `json:"frames"`
	VisualScore    float64   `json:"visual_score"`
	AudioScore     float64   `json:"audio_score"`
	TotalScore     float64   `json:"total_score"`
	Risk           string    `json:"risk"`
	Bruises        int       `json:"bruises"`
	Marks          int       `json:"marks"`
	AudioAvailable bool      `json:"audio_available"`
	ReportPath     string    `json:"report_path"`
}

const entryColumns = `id, video, created_at, frames, visual_score, audio_score, total_score,
	risk, bruises, marks, audio_available, report_path`

// Record inserts e, assigning an id and creation time when unset.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if strings.TrimSpace(e.Video) == "" {
		return Entry{}, errors.New("history entry requires a video")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.exec(ctx, `INSERT INTO analyses (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Video, e.CreatedAt.Format(time.RFC3339Nano), e.Frames,
		e.VisualScore, e.AudioScore, e.TotalScore, e.Risk,
		e.Bruises, e.Marks, boolToInt(e.AudioAvailable), e.ReportPath,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert analysis: %w", err)
	}
	return e, nil
}

// List returns the most recent entries first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + entryColumns + ` FROM analyses ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return entries, nil
}

// Get returns the entry with id. A unique id prefix is accepted so the short
// form printed by the CLI works.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM analyses WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2`,
		id, id+"%",
	)
	if err != nil {
		return Entry{}, fmt.Errorf("get analysis: %w", err)
	}
	defer rows.Close()

	var matches []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		if entry.ID == id {
			return entry, nil
		}
		matches = append(matches, entry)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, fmt.Errorf("iterate analyses: %w", err)
	}
	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Entry{}, fmt.Errorf("analysis id prefix %q is ambiguous", id)
	}
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.exec(ctx, "DELETE FROM analyses")
	if err != nil {
		return 0, fmt.Errorf("clear analyses: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e       Entry
		created string
		audio   int
	)
	if err := rows.Scan(&e.ID, &e.Video, &created, &e.Frames, &e.VisualScore, &e.AudioScore,
		&e.TotalScore, &e.Risk, &e.Bruises, &e.Marks, &audio, &e.ReportPath); err != nil {
		return Entry{}, fmt.Errorf("scan analysis: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		e.CreatedAt = ts
	}
	e.AudioAvailable = audio != 0
	return e, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
