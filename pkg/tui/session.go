package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Session walks a user through a form definition in the terminal. Values are
// collected first and evaluated once per submit; failing fields are re-asked
// until the form passes or the user gives up.
type Session struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	theme         Theme
	policy        *bluemonday.Policy
	revealSecrets bool
	prefill       map[string]string
}

// New constructs a session with defaults (survey driver, JSON output, strict
// sanitize policy).
func New(options ...Option) *Session {
	s := &Session{
		outputFormat: OutputFormatJSON,
		policy:       bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts for every field of def, evaluates the form on submit and returns
// the serialized values once it passes. A form the user declines to fix
// returns a *RejectedError matching ErrRejected.
func (s *Session) Run(ctx context.Context, def formdef.Definition) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form, err := formdef.Build(def)
	if err != nil {
		return nil, err
	}

	state := NewState(s.prefill)
	if title := def.DisplayTitle(); title != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}

	pending := def.Fields
	for {
		for _, field := range pending {
			if err := s.promptField(ctx, field, form, state); err != nil {
				return nil, err
			}
		}

		result := validation.Validate(form)
		state.SetErrors(result.Errors)
		if result.Valid {
			if err := s.driver.Info(ctx, s.theme.InfoPrefix+def.SubmitMessage()); err != nil {
				return nil, err
			}
			return s.serialize(def, form)
		}

		var failing []formdef.FieldDefinition
		for _, name := range result.Fields() {
			field, _ := def.Field(name)
			failing = append(failing, field)
			msg := fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field.DisplayLabel(), result.Message(name))
			if err := s.driver.Info(ctx, msg); err != nil {
				return nil, err
			}
		}

		retry, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Fix the fields above?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, &RejectedError{FormID: def.ID, Result: result}
		}
		pending = failing
	}
}

func (s *Session) promptField(ctx context.Context, field formdef.FieldDefinition, form *validation.Form, state *State) error {
	label := field.DisplayLabel()
	help := field.Help
	if msg := state.ErrorFor(field.Name); msg != "" {
		help = strings.TrimSpace(help + "\n" + msg)
	}
	defaultVal, ok := state.GetValue(field.Name)
	if !ok {
		defaultVal = field.Default
	}

	for {
		var (
			response string
			err      error
		)
		switch field.InputKind() {
		case formdef.FieldKindPassword:
			response, err = s.driver.Password(ctx, InputConfig{Message: label, Default: defaultVal, Help: help})
		case formdef.FieldKindMultiline:
			response, err = s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: defaultVal, Help: help})
		default:
			response, err = s.driver.Input(ctx, InputConfig{
				Message:     label,
				Default:     defaultVal,
				Help:        help,
				Placeholder: field.Placeholder,
			})
		}
		if err != nil {
			return err
		}

		if field.Sanitize {
			response = s.sanitize(response)
		}

		value, err := formdef.ParseValue(field, response)
		if err != nil {
			_ = s.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: expected %s", s.theme.ErrorPrefix, label, formdef.HumanLayout(field.Layout())))
			defaultVal = ""
			continue
		}

		state.SetValue(field.Name, response)
		return form.Set(field.Name, value)
	}
}

func (s *Session) sanitize(input string) string {
	if s.policy == nil {
		return input
	}
	return html.UnescapeString(s.policy.Sanitize(input))
}
