package application

import (
	"context"
	"html"
	"log/slog"
	"maps"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/domain/port/driven"
	"github.com/scicolab/scico/internal/motion"
)

// Validation messages shown next to the offending field.
const (
	MsgNameRequired     = "Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email"
	MsgAboutRequired    = "Please tell us about yourself"
	MsgWhyJoinRequired  = "Please tell us why you want to join"
	MsgWhyHireRequired  = "Please tell us why we should hire you"
	MsgWhyHireTooLong   = "Maximum 140 characters"
	MsgSubjectRequired  = "Subject is required"
	MsgDescriptRequired = "Description is required"
)

// Acknowledgement toasts.
const (
	ToastJoinSaved    = "Application saved locally — backend coming soon"
	ToastContactSaved = "Message saved locally — backend coming soon"
	ToastSendFailed   = "Something went wrong — please try again"
)

// DefaultToastDuration is how long an acknowledgement stays visible.
const DefaultToastDuration = 4 * time.Second

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. The check is
// applied to the raw value, so surrounding whitespace makes it invalid.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Validate returns the field errors of a submission of kind. An empty map
// means the values may be sent.
func Validate(kind model.FormKind, values map[string]string) model.FieldErrors {
	errs := model.FieldErrors{}
	switch kind {
	case model.FormJoin:
		if blank(values[model.FieldName]) {
			errs[model.FieldName] = MsgNameRequired
		}
		validateEmail(errs, model.FieldEmail, values[model.FieldEmail])
		if blank(values[model.FieldAboutYourself]) {
			errs[model.FieldAboutYourself] = MsgAboutRequired
		}
		if blank(values[model.FieldWhyJoin]) {
			errs[model.FieldWhyJoin] = MsgWhyJoinRequired
		}
		whyHire := values[model.FieldWhyHire]
		if blank(whyHire) {
			errs[model.FieldWhyHire] = MsgWhyHireRequired
		}
		if utf8.RuneCountInString(whyHire) > model.WhyHireMaxRunes {
			errs[model.FieldWhyHire] = MsgWhyHireTooLong
		}
	case model.FormContact:
		if blank(values[model.FieldSubject]) {
			errs[model.FieldSubject] = MsgSubjectRequired
		}
		if blank(values[model.FieldDescription]) {
			errs[model.FieldDescription] = MsgDescriptRequired
		}
		validateEmail(errs, model.FieldContactEmail, values[model.FieldContactEmail])
	}
	return errs
}

func validateEmail(errs model.FieldErrors, field, v string) {
	switch {
	case blank(v):
		errs[field] = MsgEmailRequired
	case !ValidEmail(v):
		errs[field] = MsgEmailInvalid
	}
}

// Ready re-derives whether the submit control is enabled. It never records
// errors.
func Ready(kind model.FormKind, values map[string]string) bool {
	return kind.Valid() && len(Validate(kind, values)) == 0
}

// ToastKind distinguishes acknowledgements from failures.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	Message string
	Kind    ToastKind
	// DismissAfter tells a renderer without a scheduler when to hide it.
	DismissAfter time.Duration
}

// FormService creates form panels wired to a submission sink.
type FormService struct {
	sink          driven.SubmissionSink
	policy        *bluemonday.Policy
	toastDuration time.Duration
	now           func() time.Time
}

// NewFormService creates a FormService sending accepted submissions to sink.
func NewFormService(sink driven.SubmissionSink) *FormService {
	return &FormService{
		sink:          sink,
		policy:        bluemonday.StrictPolicy(),
		toastDuration: DefaultToastDuration,
		now:           time.Now,
	}
}

// NewPanel returns an empty panel for kind. With a non-nil scheduler the
// panel hides its own toast; otherwise the toast carries a DismissAfter hint.
func (s *FormService) NewPanel(kind model.FormKind, sched motion.Scheduler) *FormPanel {
	values := make(map[string]string, len(model.FormFields[kind]))
	for _, f := range model.FormFields[kind] {
		values[f] = ""
	}
	return &FormPanel{svc: s, kind: kind, sched: sched, values: values, errors: model.FieldErrors{}}
}

// FormPanel holds the state of one form: its values, the errors from the
// last submit attempt and the current toast.
type FormPanel struct {
	svc   *FormService
	kind  model.FormKind
	sched motion.Scheduler

	mu         sync.Mutex
	values     map[string]string
	errors     model.FieldErrors
	toast      *Toast
	toastTimer motion.Handle
}

// Kind returns the form kind.
func (p *FormPanel) Kind() model.FormKind { return p.kind }

// Set updates a field value. Unknown fields are ignored.
func (p *FormPanel) Set(field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.values[field]; ok {
		p.values[field] = value
	}
}

// SetAll updates every known field present in values.
func (p *FormPanel) SetAll(values map[string]string) {
	for k, v := range values {
		p.Set(k, v)
	}
}

// Values returns a copy of the field values.
func (p *FormPanel) Values() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.values)
}

// Errors returns a copy of the errors from the last submit attempt.
func (p *FormPanel) Errors() model.FieldErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.errors)
}

// Toast returns the visible toast, if any.
func (p *FormPanel) Toast() *Toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.toast == nil {
		return nil
	}
	t := *p.toast
	return &t
}

// Ready reports whether submit is enabled for the current values.
func (p *FormPanel) Ready() bool {
	return Ready(p.kind, p.Values())
}

// Submit validates the values. Invalid values record errors and keep the
// values. Valid values are sanitized and recorded by the sink exactly once,
// after which the panel is cleared and an acknowledgement toast shown. A
// sink failure keeps the values and shows a failure toast; the error is
// returned for logging.
func (p *FormPanel) Submit(ctx context.Context) (bool, error) {
	values := p.Values()
	errs := Validate(p.kind, values)
	if len(errs) > 0 {
		p.mu.Lock()
		p.errors = errs
		p.mu.Unlock()
		return false, nil
	}

	sub := p.svc.submission(p.kind, values)
	if err := p.svc.sink.Record(ctx, sub); err != nil {
		slog.Error("record submission", "kind", p.kind, "id", sub.ID, "error", err)
		p.showToast(Toast{Message: ToastSendFailed, Kind: ToastError})
		return false, err
	}

	p.mu.Lock()
	for k := range p.values {
		p.values[k] = ""
	}
	p.errors = model.FieldErrors{}
	p.mu.Unlock()

	msg := ToastContactSaved
	if p.kind == model.FormJoin {
		msg = ToastJoinSaved
	}
	p.showToast(Toast{Message: msg, Kind: ToastSuccess})
	return true, nil
}

// DismissToast hides the toast now.
func (p *FormPanel) DismissToast() {
	p.mu.Lock()
	h := p.toastTimer
	p.toast, p.toastTimer = nil, 0
	p.mu.Unlock()
	if p.sched != nil {
		p.sched.Cancel(h)
	}
}

func (p *FormPanel) showToast(t Toast) {
	p.DismissToast()
	d := p.svc.toastDuration

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sched == nil {
		t.DismissAfter = d
		p.toast = &t
		return
	}
	p.toast = &t
	var h motion.Handle
	h = p.sched.AfterFunc(d, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.toastTimer == h {
			p.toast, p.toastTimer = nil, 0
		}
	})
	p.toastTimer = h
}

func (s *FormService) submission(kind model.FormKind, values map[string]string) model.Submission {
	clean := make(map[string]string, len(values))
	for k, v := range values {
		clean[k] = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
	}
	email := clean[model.FieldEmail]
	if kind == model.FormContact {
		email = clean[model.FieldContactEmail]
	}
	return model.Submission{
		ID:         uuid.NewString(),
		Kind:       kind,
		Values:     clean,
		Email:      email,
		ReceivedAt: s.now().UTC(),
	}
}
