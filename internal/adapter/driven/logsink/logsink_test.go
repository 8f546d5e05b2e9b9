package logsink

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/domain/model"
)

func TestSink_LogsWithoutValues(t *testing.T) {
	var buf bytes.Buffer
	sink := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := sink.Record(context.Background(), model.Submission{
		ID:         "abc",
		Kind:       model.FormContact,
		Values:     map[string]string{model.FieldSubject: "secret subject", model.FieldContactEmail: "a@b.co"},
		ReceivedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "form submission saved locally", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "contact", entry["kind"])
	assert.Equal(t, []any{"contactEmail", "subject"}, entry["fields"])
	assert.NotContains(t, buf.String(), "secret subject")
}

func TestNew_DefaultLogger(t *testing.T) {
	assert.NotNil(t, New(nil).logger)
}
