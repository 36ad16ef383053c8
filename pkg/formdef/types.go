package formdef

import (
	"strings"
	"time"
)

// FieldKind tells the shell which input widget to use.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindEmail     FieldKind = "email"
	FieldKindPassword  FieldKind = "password"
	FieldKindDate      FieldKind = "date"
	FieldKindMultiline FieldKind = "multiline"
)

const (
	RuleRequired     = "required"
	RuleEmail        = "email"
	RuleMinLength    = "minLength"
	RuleMaxLength    = "maxLength"
	RulePattern      = "pattern"
	RulePassword     = "password"
	RuleDateRequired = "dateRequired"
	RuleDateBetween  = "dateBetween"
)

// DefaultDateLayout is the date format used when a field does not set one.
const DefaultDateLayout = time.DateOnly

// RuleSpec is a serialisable rule reference. Length rules keep their limit in
// Params["value"], pattern rules their expression in Params["pattern"] and
// dateBetween its bounds in Params["min"] / Params["max"] (YYYY-MM-DD).
// minLength accepts Params["allowEmpty"] = "true" for optional fields.
type RuleSpec struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldDefinition declares one input.
type FieldDefinition struct {
	Name        string     `json:"name" yaml:"name"`
	Label       string     `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        FieldKind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Help        string     `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string     `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     string     `json:"default,omitempty" yaml:"default,omitempty"`
	DateLayout  string     `json:"dateLayout,omitempty" yaml:"dateLayout,omitempty"`
	Sanitize    bool       `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Rules       []RuleSpec `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Definition declares a form.
type Definition struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Submit      string            `json:"submit,omitempty" yaml:"submit,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	Source      string            `json:"-" yaml:"-"`
}

// Field returns the named field definition.
func (d Definition) Field(name string) (FieldDefinition, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// DisplayTitle returns the title, falling back to the id.
func (d Definition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

// SubmitMessage is shown once the form is accepted.
func (d Definition) SubmitMessage() string {
	if d.Submit != "" {
		return d.Submit
	}
	return "Form submitted"
}

// DisplayLabel returns the label, falling back to the name.
func (f FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// InputKind returns the kind, defaulting to text.
func (f FieldDefinition) InputKind() FieldKind {
	if f.Kind == "" {
		return FieldKindText
	}
	return f.Kind
}

// Layout returns the date layout for date fields.
func (f FieldDefinition) Layout() string {
	if layout := strings.TrimSpace(f.DateLayout); layout != "" {
		return layout
	}
	return DefaultDateLayout
}

// Required reports whether the field carries a required or dateRequired rule.
func (f FieldDefinition) Required() bool {
	for _, rule := range f.Rules {
		if rule.Kind == RuleRequired || rule.Kind == RuleDateRequired {
			return true
		}
	}
	return false
}

func knownKind(kind FieldKind) bool {
	switch kind {
	case FieldKindText, FieldKindEmail, FieldKindPassword, FieldKindDate, FieldKindMultiline:
		return true
	default:
		return false
	}
}
