// Package contactform models the landing page contact form: the values a
// visitor types, the per-field error messages shown inline, and the gate
// that decides whether the form may be sent.
package contactform

import (
	"fmt"
	"strings"

	"github.com/osa911/landing/internal/api/sanitization"
)

// Field names, matching the JSON keys of the contact endpoint
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldMessage   = "message"
)

// Inline error messages
const (
	ErrRequired     = "Required"
	ErrInvalidEmail = "Invalid email"
)

// Fields lists the text fields in display order
var Fields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldMessage}

// IsEmailShaped reports whether s looks like local@domain.tld. The API
// applies the same rule, so a form that passes here is not bounced there.
func IsEmailShaped(s string) bool {
	return sanitization.IsEmailShaped(s)
}

// Submission is one contact request as sent to the API
type Submission struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// FieldErrors maps a field name to its error; absent means valid
type FieldErrors map[string]string

// Form keeps a Submission and its FieldErrors consistent with user input
type Form struct {
	values Submission
	errors FieldErrors
}

// New returns an empty form
func New() *Form {
	return &Form{errors: FieldErrors{}}
}

func (f *Form) slot(name string) (*string, error) {
	switch name {
	case FieldFirstName:
		return &f.values.FirstName, nil
	case FieldLastName:
		return &f.values.LastName, nil
	case FieldEmail:
		return &f.values.Email, nil
	case FieldPhone:
		return &f.values.Phone, nil
	case FieldMessage:
		return &f.values.Message, nil
	}
	return nil, fmt.Errorf("unknown field %q", name)
}

// SetField stores value and re-validates that field only
func (f *Form) SetField(name, value string) error {
	slot, err := f.slot(name)
	if err != nil {
		return err
	}
	*slot = value
	f.Validate(name, value)
	return nil
}

// Validate recomputes the error for a single field
func (f *Form) Validate(name, value string) {
	msg := ""
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		msg = ErrRequired
	case name == FieldEmail && !IsEmailShaped(value):
		msg = ErrInvalidEmail
	}

	if msg == "" {
		delete(f.errors, name)
		return
	}
	f.errors[name] = msg
}

// SetCaptchaToken records the token handed over by the challenge widget
func (f *Form) SetCaptchaToken(token string) {
	f.values.CaptchaToken = token
}

// ClearCaptcha drops the token, e.g. when the widget expires or errors
func (f *Form) ClearCaptcha() {
	f.values.CaptchaToken = ""
}

// IsSubmittable reports whether every field is filled, the email is shaped
// correctly and a captcha token is present. It does not touch the error map.
func (f *Form) IsSubmittable() bool {
	v := f.values
	for _, s := range []string{v.FirstName, v.LastName, v.Email, v.Phone, v.Message} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return IsEmailShaped(strings.TrimSpace(v.Email)) && v.CaptchaToken != ""
}

// Reset clears values, errors and the captcha token
func (f *Form) Reset() {
	f.values = Submission{}
	f.errors = FieldErrors{}
}

// Submission returns a copy of the current values
func (f *Form) Submission() Submission {
	return f.values
}

// Errors returns a copy of the current field errors
func (f *Form) Errors() FieldErrors {
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the error for one field, or "" when valid
func (f *Form) Error(name string) string {
	return f.errors[name]
}
