// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/scicolab/scico/internal/domain/model"
)

// ErrSubmissionNotFound indicates the requested submission does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionSink is the send target of the form panels. Record must not
// block on remote delivery; adapters either log the submission or queue it
// in an outbox.
type SubmissionSink interface {
	Record(ctx context.Context, sub model.Submission) error
}

// SubmissionOutbox is a SubmissionSink that keeps submissions until a
// delivery integration marks them delivered.
type SubmissionOutbox interface {
	SubmissionSink
	// ListPending returns undelivered submissions, oldest first.
	ListPending(ctx context.Context, limit int) ([]model.Submission, error)
	// MarkDelivered returns ErrSubmissionNotFound if id is unknown.
	MarkDelivered(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
