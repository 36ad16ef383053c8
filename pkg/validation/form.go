package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when a form has no field with the given name.
	ErrUnknownField = errors.New("validation: unknown field")
	// ErrDuplicateField is returned when a field name is registered twice.
	ErrDuplicateField = errors.New("validation: duplicate field")
	// ErrEmptyFieldName is returned for fields without a name.
	ErrEmptyFieldName = errors.New("validation: field name is required")
)

// Field is one named input: its current value and the ordered rules it must
// satisfy.
type Field struct {
	Name  string
	Label string
	Value Value
	Rules []Rule
}

// NewField constructs an empty field with the given rules.
func NewField(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: rules}
}

// Check evaluates the field's rules against its current value and returns the
// first failure.
func (f Field) Check() (string, bool) {
	return Compose(f.Rules...)(f.Value)
}

// DisplayName returns the label, falling back to the name.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Form holds fields in declaration order, keyed by unique name. A Form is
// meant for a single editing session and is not safe for concurrent writes.
type Form struct {
	fields []Field
	index  map[string]int
}

// NewForm builds a form from fields. Names must be non-empty and unique.
func NewForm(fields ...Field) (*Form, error) {
	form := &Form{index: make(map[string]int, len(fields))}
	for _, field := range fields {
		if err := form.Add(field); err != nil {
			return nil, err
		}
	}
	return form, nil
}

// Add appends a field.
func (f *Form) Add(field Field) error {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return ErrEmptyFieldName
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	field.Name = name
	field.Rules = append([]Rule(nil), field.Rules...)
	f.index[name] = len(f.fields)
	f.fields = append(f.fields, field)
	return nil
}

// Set replaces the current value of a field.
func (f *Form) Set(name string, value Value) error {
	idx, ok := f.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.fields[idx].Value = value
	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (Value, bool) {
	idx, ok := f.lookup(name)
	if !ok {
		return Value{}, false
	}
	return f.fields[idx].Value, true
}

// Field returns a copy of the named field.
func (f *Form) Field(name string) (Field, bool) {
	idx, ok := f.lookup(name)
	if !ok {
		return Field{}, false
	}
	return f.fields[idx], true
}

// Fields returns a copy of the fields in declaration order.
func (f *Form) Fields() []Field {
	if f == nil {
		return nil
	}
	return append([]Field(nil), f.fields...)
}

// Names returns field names in declaration order.
func (f *Form) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.Name
	}
	return names
}

// Len reports the number of fields.
func (f *Form) Len() int {
	if f == nil {
		return 0
	}
	return len(f.fields)
}

// Values returns the current values keyed by field name.
func (f *Form) Values() map[string]Value {
	if f == nil {
		return nil
	}
	out := make(map[string]Value, len(f.fields))
	for _, field := range f.fields {
		out[field.Name] = field.Value
	}
	return out
}

func (f *Form) lookup(name string) (int, bool) {
	if f == nil || f.index == nil {
		return 0, false
	}
	idx, ok := f.index[strings.TrimSpace(name)]
	return idx, ok
}
