package model

import "time"

// FormKind identifies one of the site's forms.
type FormKind string

const (
	FormJoin    FormKind = "join"
	FormContact FormKind = "contact"
)

// Valid reports whether k names a known form.
func (k FormKind) Valid() bool { return k == FormJoin || k == FormContact }

// Field names of the two forms.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldAboutYourself = "aboutYourself"
	FieldWhyJoin       = "whyJoin"
	FieldWhyHire       = "whyHire"
	FieldSubject       = "subject"
	FieldDescription   = "description"
	FieldContactEmail  = "contactEmail"
)

// WhyHireMaxRunes is the length limit of the whyHire field.
const WhyHireMaxRunes = 140

// FormFields lists the fields of each form in display order.
var FormFields = map[FormKind][]string{
	FormJoin:    {FieldName, FieldEmail, FieldAboutYourself, FieldWhyJoin, FieldWhyHire},
	FormContact: {FieldSubject, FieldDescription, FieldContactEmail},
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Submission is an accepted form submission handed to a sink.
type Submission struct {
	ID         string
	Kind       FormKind
	Values     map[string]string
	Email      string
	ReceivedAt time.Time
}
