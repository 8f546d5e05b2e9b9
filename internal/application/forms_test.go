package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/motion"
)

type mockSink struct {
	recorded []model.Submission
	err      error
}

func (m *mockSink) Record(_ context.Context, sub model.Submission) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, sub)
	return nil
}

func validJoin() map[string]string {
	return map[string]string{
		model.FieldName:          "Ada",
		model.FieldEmail:         "ada@example.com",
		model.FieldAboutYourself: "Curious.",
		model.FieldWhyJoin:       "Science.",
		model.FieldWhyHire:       "I ship.",
	}
}

func validContact() map[string]string {
	return map[string]string{
		model.FieldSubject:      "Hello",
		model.FieldDescription:  "A question",
		model.FieldContactEmail: "grace@example.com",
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"a@b", false},
		{"a b@c.de", false},
		{" a@b.co", false},
		{"@b.co", false},
		{"a@@b.co", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), tt.in)
	}
}

func TestValidate_Join(t *testing.T) {
	tests := []struct {
		name   string
		modify func(map[string]string)
		want   model.FieldErrors
	}{
		{
			name:   "valid",
			modify: func(map[string]string) {},
			want:   model.FieldErrors{},
		},
		{
			name:   "whitespace name",
			modify: func(v map[string]string) { v[model.FieldName] = "   " },
			want:   model.FieldErrors{model.FieldName: MsgNameRequired},
		},
		{
			name:   "missing email",
			modify: func(v map[string]string) { v[model.FieldEmail] = "" },
			want:   model.FieldErrors{model.FieldEmail: MsgEmailRequired},
		},
		{
			name:   "invalid email",
			modify: func(v map[string]string) { v[model.FieldEmail] = "ada@example" },
			want:   model.FieldErrors{model.FieldEmail: MsgEmailInvalid},
		},
		{
			name: "all texts missing",
			modify: func(v map[string]string) {
				v[model.FieldAboutYourself] = ""
				v[model.FieldWhyJoin] = "\t"
				v[model.FieldWhyHire] = ""
			},
			want: model.FieldErrors{
				model.FieldAboutYourself: MsgAboutRequired,
				model.FieldWhyJoin:       MsgWhyJoinRequired,
				model.FieldWhyHire:       MsgWhyHireRequired,
			},
		},
		{
			name:   "whyHire at limit",
			modify: func(v map[string]string) { v[model.FieldWhyHire] = strings.Repeat("é", 140) },
			want:   model.FieldErrors{},
		},
		{
			name:   "whyHire too long",
			modify: func(v map[string]string) { v[model.FieldWhyHire] = strings.Repeat("x", 141) },
			want:   model.FieldErrors{model.FieldWhyHire: MsgWhyHireTooLong},
		},
		{
			name:   "whitespace-only whyHire over limit reports length",
			modify: func(v map[string]string) { v[model.FieldWhyHire] = strings.Repeat(" ", 141) },
			want:   model.FieldErrors{model.FieldWhyHire: MsgWhyHireTooLong},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validJoin()
			tt.modify(v)
			assert.Equal(t, tt.want, Validate(model.FormJoin, v))
			assert.Equal(t, len(tt.want) == 0, Ready(model.FormJoin, v))
		})
	}
}

func TestValidate_Contact(t *testing.T) {
	assert.Empty(t, Validate(model.FormContact, validContact()))

	errs := Validate(model.FormContact, map[string]string{model.FieldContactEmail: "nope"})
	assert.Equal(t, model.FieldErrors{
		model.FieldSubject:      MsgSubjectRequired,
		model.FieldDescription:  MsgDescriptRequired,
		model.FieldContactEmail: MsgEmailInvalid,
	}, errs)
}

func TestReady_UnknownKind(t *testing.T) {
	assert.False(t, Ready(model.FormKind("other"), nil))
}

func TestFormPanel_InvalidSubmitKeepsValues(t *testing.T) {
	sink := &mockSink{}
	svc := NewFormService(sink)
	p := svc.NewPanel(model.FormJoin, nil)

	p.SetAll(validJoin())
	p.Set(model.FieldEmail, "broken")
	assert.False(t, p.Ready())

	ok, err := p.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, sink.recorded, "nothing is sent")
	assert.Equal(t, "broken", p.Values()[model.FieldEmail])
	assert.Equal(t, MsgEmailInvalid, p.Errors()[model.FieldEmail])
	assert.Nil(t, p.Toast())
}

func TestFormPanel_ValidSubmitClearsAndAcknowledges(t *testing.T) {
	sink := &mockSink{}
	svc := NewFormService(sink)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	p := svc.NewPanel(model.FormJoin, nil)

	v := validJoin()
	v[model.FieldAboutYourself] = "<b>Curious</b> & kind"
	p.SetAll(v)
	p.Set("unknown", "ignored")

	// A previous invalid attempt leaves errors that a valid submit clears.
	p.Set(model.FieldName, "")
	_, _ = p.Submit(context.Background())
	require.NotEmpty(t, p.Errors())
	p.Set(model.FieldName, "Ada")

	ok, err := p.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, sink.recorded, 1, "sent exactly once")
	sub := sink.recorded[0]
	assert.Equal(t, model.FormJoin, sub.Kind)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.Equal(t, "Curious & kind", sub.Values[model.FieldAboutYourself])
	assert.NotContains(t, sub.Values, "unknown")
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, 2026, sub.ReceivedAt.Year())

	for field, val := range p.Values() {
		assert.Empty(t, val, field)
	}
	assert.Empty(t, p.Errors())

	toast := p.Toast()
	require.NotNil(t, toast)
	assert.Equal(t, ToastJoinSaved, toast.Message)
	assert.Equal(t, ToastSuccess, toast.Kind)
	assert.Equal(t, 4*time.Second, toast.DismissAfter)
}

func TestFormPanel_ToastExpiresOnScheduler(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	svc := NewFormService(&mockSink{})
	p := svc.NewPanel(model.FormContact, sched)
	p.SetAll(validContact())

	ok, err := p.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	toast := p.Toast()
	require.NotNil(t, toast)
	assert.Equal(t, ToastContactSaved, toast.Message)
	assert.Zero(t, toast.DismissAfter)

	sched.Advance(3999 * time.Millisecond)
	assert.NotNil(t, p.Toast())
	sched.Advance(time.Millisecond)
	assert.Nil(t, p.Toast())
}

func TestFormPanel_SecondToastRestartsTimer(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	svc := NewFormService(&mockSink{})
	p := svc.NewPanel(model.FormContact, sched)

	p.SetAll(validContact())
	_, _ = p.Submit(context.Background())
	sched.Advance(3 * time.Second)

	p.SetAll(validContact())
	_, _ = p.Submit(context.Background())
	sched.Advance(2 * time.Second)
	assert.NotNil(t, p.Toast(), "first timer no longer hides the second toast")

	_, timers := sched.Pending()
	assert.Equal(t, 1, timers)
}

func TestFormPanel_SinkFailureKeepsValues(t *testing.T) {
	sink := &mockSink{err: errors.New("disk full")}
	p := NewFormService(sink).NewPanel(model.FormContact, nil)
	p.SetAll(validContact())

	ok, err := p.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Hello", p.Values()[model.FieldSubject])

	toast := p.Toast()
	require.NotNil(t, toast)
	assert.Equal(t, ToastError, toast.Kind)
}
