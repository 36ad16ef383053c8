package formdef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// ErrInvalidDate is returned by ParseValue when date input does not match the
// field layout.
var ErrInvalidDate = errors.New("formdef: invalid date")

// Build compiles a definition into a validation form. Field defaults become
// initial values.
func Build(def Definition) (*validation.Form, error) {
	if err := Check(def); err != nil {
		return nil, err
	}

	form, err := validation.NewForm()
	if err != nil {
		return nil, err
	}
	for _, field := range def.Fields {
		rules := make([]validation.Rule, 0, len(field.Rules))
		for idx, spec := range field.Rules {
			rule, err := CompileRule(spec)
			if err != nil {
				return nil, fmt.Errorf("formdef: form %q field %q rule %d: %w", def.ID, field.Name, idx, err)
			}
			rules = append(rules, rule)
		}

		initial, err := ParseValue(field, field.Default)
		if err != nil {
			return nil, fmt.Errorf("formdef: form %q field %q default: %w", def.ID, field.Name, err)
		}

		if err := form.Add(validation.Field{
			Name:  field.Name,
			Label: field.DisplayLabel(),
			Value: initial,
			Rules: rules,
		}); err != nil {
			return nil, fmt.Errorf("formdef: form %q: %w", def.ID, err)
		}
	}
	return form, nil
}

// Check reports structural problems: missing id, empty, padded or duplicate
// field names and unknown field kinds.
func Check(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return errors.New("formdef: form id is required")
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for idx, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("formdef: form %q field %d has no name", def.ID, idx)
		}
		if name != field.Name {
			return fmt.Errorf("formdef: form %q field %q has surrounding whitespace in its name", def.ID, field.Name)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("formdef: form %q defines field %q twice", def.ID, name)
		}
		seen[name] = struct{}{}
		if !knownKind(field.InputKind()) {
			return fmt.Errorf("formdef: form %q field %q has unknown kind %q", def.ID, name, field.Kind)
		}
	}
	return nil
}

// CompileRule turns a rule spec into a validation rule.
func CompileRule(spec RuleSpec) (validation.Rule, error) {
	var opts []validation.Option
	if msg := strings.TrimSpace(spec.Message); msg != "" {
		opts = append(opts, validation.WithMessage(msg))
	}

	switch spec.Kind {
	case RuleRequired:
		return validation.Required(opts...), nil
	case RuleEmail:
		return validation.Email(opts...), nil
	case RuleMinLength, RuleMaxLength:
		n, err := strconv.Atoi(strings.TrimSpace(spec.Params["value"]))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s needs a non-negative integer value, got %q", spec.Kind, spec.Params["value"])
		}
		if spec.Kind == RuleMinLength {
			if raw, ok := spec.Params["allowEmpty"]; ok {
				allow, err := strconv.ParseBool(strings.TrimSpace(raw))
				if err != nil {
					return nil, fmt.Errorf("minLength allowEmpty must be a boolean, got %q", raw)
				}
				if allow {
					opts = append(opts, validation.SkipEmpty())
				}
			}
			return validation.MinLength(n, opts...), nil
		}
		return validation.MaxLength(n, opts...), nil
	case RulePattern:
		expr := spec.Params["pattern"]
		if expr == "" {
			return nil, errors.New("pattern needs a pattern parameter")
		}
		pattern, err := validation.CompilePattern(expr)
		if err != nil {
			return nil, err
		}
		return validation.MatchesCompiled(pattern, opts...), nil
	case RulePassword:
		return validation.PasswordComplexity(opts...), nil
	case RuleDateRequired:
		return validation.DateRequired(opts...), nil
	case RuleDateBetween:
		first, err := parseBound(spec.Params["min"])
		if err != nil {
			return nil, fmt.Errorf("dateBetween min: %w", err)
		}
		last, err := parseBound(spec.Params["max"])
		if err != nil {
			return nil, fmt.Errorf("dateBetween max: %w", err)
		}
		if !first.IsZero() && !last.IsZero() && last.Before(first) {
			return nil, errors.New("dateBetween max is before min")
		}
		return validation.DateBetween(first, last, opts...), nil
	case "":
		return nil, errors.New("rule kind is required")
	default:
		return nil, fmt.Errorf("unknown rule kind %q", spec.Kind)
	}
}

func parseBound(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// ParseValue converts raw input for a field into a value. Blank input is
// empty. Date fields parse with the field layout.
func ParseValue(field FieldDefinition, raw string) (validation.Value, error) {
	if field.InputKind() != FieldKindDate {
		if raw == "" {
			return validation.Empty(), nil
		}
		return validation.Text(raw), nil
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return validation.Empty(), nil
	}
	t, err := time.Parse(field.Layout(), trimmed)
	if err != nil {
		return validation.Empty(), fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, trimmed, field.Layout())
	}
	return validation.Date(t), nil
}

// FormatValue renders a value the way the field expects it to be typed.
func FormatValue(field FieldDefinition, value validation.Value) string {
	if t, ok := value.Time(); ok {
		return t.Format(field.Layout())
	}
	return value.String()
}

// Fill sets raw inputs on form. Inputs that cannot be parsed leave the field
// empty and are reported by field name. Raw names def does not declare are
// ignored; a field of def missing from form is an error.
func Fill(form *validation.Form, def Definition, raw map[string]string) (map[string]string, error) {
	var issues map[string]string
	for _, field := range def.Fields {
		input, ok := raw[field.Name]
		if !ok {
			continue
		}
		value, err := ParseValue(field, input)
		if err != nil {
			if issues == nil {
				issues = make(map[string]string)
			}
			issues[field.Name] = fmt.Sprintf("Invalid date, expected %s.", HumanLayout(field.Layout()))
		}
		if err := form.Set(field.Name, value); err != nil {
			return nil, fmt.Errorf("formdef: fill form %q: %w", def.ID, err)
		}
	}
	return issues, nil
}

// HumanLayout renders a Go date layout as a YYYY-MM-DD style hint.
func HumanLayout(layout string) string {
	return strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD").Replace(layout)
}
