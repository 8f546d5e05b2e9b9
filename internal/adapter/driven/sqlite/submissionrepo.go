package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SubmissionOutbox = (*SubmissionRepo)(nil)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SubmissionRepo is the SQLite outbox for form submissions.
type SubmissionRepo struct {
	db  *DB
	now func() time.Time
}

// NewSubmissionRepo creates a SubmissionRepo backed by db.
func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db, now: time.Now}
}

// Record stores sub as pending. Recording the same ID twice is a no-op.
func (r *SubmissionRepo) Record(ctx context.Context, sub model.Submission) error {
	payload, err := json.Marshal(sub.Values)
	if err != nil {
		return fmt.Errorf("encode submission %s: %w", sub.ID, err)
	}

	const query = `INSERT INTO submissions (id, kind, email, payload, received_at)
		VALUES (?, ?, ?, ?, ?) ON CONFLICT(id) DO NOTHING`
	_, err = r.db.Writer.ExecContext(ctx, query,
		sub.ID, string(sub.Kind), sub.Email, string(payload), sub.ReceivedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record submission %s: %w", sub.ID, err)
	}
	return nil
}

// ListPending returns undelivered submissions, oldest first. A non-positive
// limit returns all of them.
func (r *SubmissionRepo) ListPending(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = -1
	}
	const query = `SELECT id, kind, email, payload, received_at FROM submissions
		WHERE delivered_at IS NULL ORDER BY received_at, id LIMIT ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	defer rows.Close()

	var result []model.Submission
	for rows.Next() {
		var (
			sub        model.Submission
			kind       string
			payload    string
			receivedAt string
		)
		if err := rows.Scan(&sub.ID, &kind, &sub.Email, &payload, &receivedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Kind = model.FormKind(kind)
		if err := json.Unmarshal([]byte(payload), &sub.Values); err != nil {
			return nil, fmt.Errorf("decode submission %s: %w", sub.ID, err)
		}
		if sub.ReceivedAt, err = time.Parse(timeLayout, receivedAt); err != nil {
			return nil, fmt.Errorf("parse received_at for %s: %w", sub.ID, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return result, nil
}

// MarkDelivered flags a submission as delivered. It returns
// driven.ErrSubmissionNotFound if id is unknown; marking twice is a no-op.
func (r *SubmissionRepo) MarkDelivered(ctx context.Context, id string) error {
	const query = `UPDATE submissions SET delivered_at = COALESCE(delivered_at, ?) WHERE id = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, r.now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("mark submission %s delivered: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark submission %s delivered: %w", id, err)
	}
	if n == 0 {
		return driven.ErrSubmissionNotFound
	}
	return nil
}

// Count returns the number of stored submissions.
func (r *SubmissionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
