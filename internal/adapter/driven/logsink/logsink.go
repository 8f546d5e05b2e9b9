// Package logsink is the default submission sink: it only logs, keeping the
// forms local until a delivery backend exists.
package logsink

import (
	"context"
	"log/slog"
	"sort"

	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SubmissionSink = (*Sink)(nil)

// Sink logs submissions at info level. Field values are not logged, only
// their names, so message bodies stay out of the log.
type Sink struct {
	logger *slog.Logger
}

// New creates a Sink writing to logger; nil selects slog.Default().
func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

// Record logs sub. It never fails.
func (s *Sink) Record(ctx context.Context, sub model.Submission) error {
	fields := make([]string, 0, len(sub.Values))
	for k := range sub.Values {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	s.logger.InfoContext(ctx, "form submission saved locally",
		"id", sub.ID,
		"kind", sub.Kind,
		"fields", fields,
		"received_at", sub.ReceivedAt,
	)
	return nil
}
