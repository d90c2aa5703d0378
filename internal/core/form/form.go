// Package form implements the descriptor-driven form model behind every
// create/edit modal in the console: an ordered field list declared per page,
// a typed draft bound from submitted values, and required-field validation.
// The form knows nothing about the network; pages hand the draft to a
// resource store and decide from its result whether to close the modal.
package form

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Kind is the input control a field renders as.
type Kind string

const (
	Text     Kind = "text"
	Number   Kind = "number"
	Email    Kind = "email"
	Tel      Kind = "tel"
	Date     Kind = "date"
	DateTime Kind = "datetime-local"
	Checkbox Kind = "checkbox"
	Select   Kind = "select"
	TextArea Kind = "textarea"
)

// Option is one entry of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input. Descriptors are declared per page and are
// immutable for that page's lifetime.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	Options     []Option
	Step        string // number granularity, e.g. "0.01" for money
}

// Draft is the in-progress record before submission: string for text-like
// kinds, float64 for number, bool for checkbox.
type Draft map[string]any

// FieldError is an inline, per-field validation message.
type FieldError struct {
	Field   string
	Message string
}

// Form is an ordered field-descriptor list with bind and validate behaviour.
type Form struct {
	Fields   []Field
	validate *validator.Validate
}

func New(fields ...Field) *Form {
	return &Form{Fields: fields, validate: validator.New()}
}

// Defaults builds the draft a fresh modal opens with: the initial values where
// given, per-kind zero values elsewhere (empty string for text-like fields,
// false for checkboxes).
func (f *Form) Defaults(initial Draft) Draft {
	d := make(Draft, len(f.Fields))
	for _, fld := range f.Fields {
		if v, ok := initial[fld.Name]; ok {
			d[fld.Name] = v
			continue
		}
		switch fld.Kind {
		case Checkbox:
			d[fld.Name] = false
		case Number:
			d[fld.Name] = 0.0
		default:
			d[fld.Name] = ""
		}
	}
	return d
}

// Bind coerces submitted values into a typed draft. Unknown keys in values
// are ignored; absent checkboxes bind to false (unchecked boxes are not
// submitted at all).
func (f *Form) Bind(values url.Values) (Draft, error) {
	d := make(Draft, len(f.Fields))
	for _, fld := range f.Fields {
		raw := values.Get(fld.Name)
		switch fld.Kind {
		case Checkbox:
			d[fld.Name] = raw == "on" || raw == "true"
		case Number:
			if raw == "" {
				d[fld.Name] = 0.0
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("form: field %s: %w", fld.Name, err)
			}
			d[fld.Name] = n
		default:
			d[fld.Name] = raw
		}
	}
	return d, nil
}

// Validate applies the client-side gate: required fields must be present, and
// email kinds must look like an address. Everything authoritative stays
// backend-side and surfaces through the resource store's error message.
func (f *Form) Validate(d Draft) []FieldError {
	var errs []FieldError
	for _, fld := range f.Fields {
		v := d[fld.Name]
		if fld.Required {
			if missing(fld.Kind, v) {
				errs = append(errs, FieldError{Field: fld.Name, Message: fld.Label + " is required"})
				continue
			}
		}
		if fld.Kind == Email {
			if s, _ := v.(string); s != "" {
				if err := f.validate.Var(s, "email"); err != nil {
					errs = append(errs, FieldError{Field: fld.Name, Message: fld.Label + " must be a valid email"})
				}
			}
		}
	}
	return errs
}

// missing reports whether a required field is effectively empty. A checkbox
// is never missing: unchecked is a legitimate answer.
func missing(k Kind, v any) bool {
	switch k {
	case Checkbox:
		return false
	case Number:
		_, ok := v.(float64)
		return !ok
	default:
		s, _ := v.(string)
		return s == ""
	}
}
