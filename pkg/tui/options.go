package tui

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// OutputFormat controls how accepted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one name=value line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value onto an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	case "":
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", raw)
	}
}

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithSanitizePolicy replaces the policy applied to fields flagged sanitize.
func WithSanitizePolicy(policy *bluemonday.Policy) Option {
	return func(s *Session) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithRevealSecrets includes password values in the output instead of a mask.
func WithRevealSecrets(reveal bool) Option {
	return func(s *Session) {
		s.revealSecrets = reveal
	}
}

// WithPrefill seeds raw inputs, keyed by field name, used as prompt defaults.
func WithPrefill(values map[string]string) Option {
	return func(s *Session) {
		s.prefill = values
	}
}
