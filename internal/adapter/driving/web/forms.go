package web

import (
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	vm "github.com/scicolab/scico/internal/adapter/driving/web/viewmodel"
	"github.com/scicolab/scico/internal/domain/model"
)

// maxFormBytes bounds a form post.
const maxFormBytes = 64 << 10

// FormPanel serves an empty form panel fragment and issues the CSRF cookie.
func (h *Handler) FormPanel(w http.ResponseWriter, r *http.Request) {
	kind, ok := formKind(w, r)
	if !ok {
		return
	}
	token := ensureCSRFToken(w, r)
	panel := h.forms.NewPanel(kind, nil)
	h.render(w, r, http.StatusOK, formPanel(toFormViewModel(panel, token)))
}

// SubmitForm validates and submits a form post and answers with the updated
// panel: errors inline when invalid, cleared with a toast when accepted.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	kind, ok := formKind(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !validateCSRF(r) {
		h.logger.Warn("csrf validation failed", "form", kind, "remote", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	panel := h.forms.NewPanel(kind, nil)
	panel.SetAll(formValues(kind, r.PostForm))

	accepted, err := panel.Submit(r.Context())
	if err != nil {
		h.logger.Error("failed to record submission", "form", kind, "error", err)
	}
	if accepted {
		h.logger.Info("form submitted", "form", kind)
	}

	cookie, _ := r.Cookie(csrfCookieName)
	h.render(w, r, http.StatusOK, formPanel(toFormViewModel(panel, cookie.Value)))
}

// FormReady re-derives submit enablement from the current field values and
// returns the submit button.
func (h *Handler) FormReady(w http.ResponseWriter, r *http.Request) {
	kind, ok := formKind(w, r)
	if !ok {
		return
	}
	panel := h.forms.NewPanel(kind, nil)
	panel.SetAll(formValues(kind, r.URL.Query()))
	f := toFormViewModel(panel, "")
	h.render(w, r, http.StatusOK, submitButton(f))
}

func formKind(w http.ResponseWriter, r *http.Request) (model.FormKind, bool) {
	kind := model.FormKind(r.PathValue("kind"))
	if !kind.Valid() {
		http.NotFound(w, r)
		return "", false
	}
	return kind, true
}

// formValues picks the fields of kind out of v.
func formValues(kind model.FormKind, v url.Values) map[string]string {
	out := make(map[string]string, len(model.FormFields[kind]))
	for _, f := range model.FormFields[kind] {
		out[f] = v.Get(f)
	}
	return out
}

func formPanel(f vm.FormViewModel) g.Node {
	target := "#form-" + f.Kind
	fields := make([]g.Node, 0, len(f.Fields))
	for _, fv := range f.Fields {
		fields = append(fields, formField(f.Kind, fv))
	}

	return Div(ID("form-"+f.Kind), Class("connect-card"),
		Div(Class("connect-card__header"), H3(g.Text(f.Title))),
		g.El("form", Class("connect-form"),
			Method("post"), Action(f.Action),
			g.Attr("hx-post", f.Action),
			g.Attr("hx-target", target),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("novalidate"),
			Input(Type("hidden"), Name(csrfFormField), Value(f.CSRFToken)),
			g.Group(fields),
			submitButton(f),
		),
		toast(f.Toast),
	)
}

func formField(kind string, f vm.FieldViewModel) g.Node {
	id := kind + "-" + f.Name
	errID := id + "-error"

	attrs := []g.Node{ID(id), Name(f.Name)}
	if f.Error != "" {
		attrs = append(attrs, Class("error"),
			g.Attr("aria-invalid", "true"),
			g.Attr("aria-describedby", errID))
	}

	var control g.Node
	if f.Multiline {
		control = Textarea(g.Group(attrs), g.Attr("rows", "4"), g.Text(f.Value))
	} else {
		if f.MaxRunes > 0 {
			attrs = append(attrs, g.Attr("maxlength", strconv.Itoa(f.MaxRunes)))
		}
		control = Input(Type(f.Type), Value(f.Value), g.Group(attrs))
	}

	var counter g.Node
	if f.MaxRunes > 0 {
		counter = Div(ID(id+"-counter"), Class("char-counter"),
			g.Textf("%d/%d", utf8.RuneCountInString(f.Value), f.MaxRunes))
	}
	var msg g.Node
	if f.Error != "" {
		msg = Span(ID(errID), Class("error-text"), g.Text(f.Error))
	}

	return Div(Class("form-field"),
		control,
		g.El("label", For(id), g.Text(f.Label)),
		counter,
		msg,
	)
}

// submitButton is re-fetched on every input so its enabled state always
// matches the current values.
func submitButton(f vm.FormViewModel) g.Node {
	label := "Send Message"
	if f.Kind == string(model.FormJoin) {
		label = "Submit Application"
	}
	var disabled g.Node
	if !f.Ready {
		disabled = Disabled()
	}
	return Button(ID("submit-"+f.Kind), Type("submit"), Class("connect-submit"),
		g.Attr("hx-get", f.ReadyURL),
		g.Attr("hx-trigger", "input from:closest form delay:150ms"),
		g.Attr("hx-include", "closest form"),
		g.Attr("hx-swap", "outerHTML"),
		disabled,
		g.Text(label),
	)
}

func toast(t *vm.ToastViewModel) g.Node {
	if t == nil {
		return nil
	}
	return Div(Class("connect-toast connect-toast--visible connect-toast--"+t.Kind),
		g.Attr("role", "status"),
		g.Attr("data-dismiss-ms", strconv.FormatInt(t.DismissMS, 10)),
		Span(g.Text(t.Message)),
	)
}
