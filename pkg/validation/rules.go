package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultRequiredMessage     = "This field cannot be empty."
	defaultEmailMessage        = "This field requires a valid email address."
	defaultMinLengthMessage    = "Value must have a length greater than or equal to %d."
	defaultMaxLengthMessage    = "Value must have a length less than or equal to %d."
	defaultDateRequiredMessage = "Please select a date."
	defaultDateBetweenMessage  = "Date must be between %s and %s."
	defaultDateAfterMessage    = "Date must be on or after %s."
	defaultDateBeforeMessage   = "Date must be on or before %s."
)

// Required rejects empty values, blank text included.
func Required(options ...Option) Rule {
	message := resolveMessage(defaultRequiredMessage, options)
	return func(value Value) (string, bool) {
		return fail(!value.IsEmpty(), message)
	}
}

// Email rejects text that is not a bare local@domain.tld address. Empty
// values pass so the rule can be paired with Required.
func Email(options ...Option) Rule {
	message := resolveMessage(defaultEmailMessage, options)
	return func(value Value) (string, bool) {
		if value.IsEmpty() {
			return "", false
		}
		return fail(isEmail(value.String()), message)
	}
}

// MinLength rejects values with fewer than n characters. Empty values count
// as zero characters unless SkipEmpty is given.
func MinLength(n int, options ...Option) Rule {
	cfg := resolveConfig(fmt.Sprintf(defaultMinLengthMessage, n), options)
	return func(value Value) (string, bool) {
		if cfg.skipEmpty && value.IsEmpty() {
			return "", false
		}
		return fail(utf8.RuneCountInString(value.String()) >= n, cfg.message)
	}
}

// MaxLength rejects values with more than n characters.
func MaxLength(n int, options ...Option) Rule {
	message := resolveMessage(fmt.Sprintf(defaultMaxLengthMessage, n), options)
	return func(value Value) (string, bool) {
		return fail(utf8.RuneCountInString(value.String()) <= n, message)
	}
}

// DateRequired rejects values that do not hold a selected date.
func DateRequired(options ...Option) Rule {
	message := resolveMessage(defaultDateRequiredMessage, options)
	return func(value Value) (string, bool) {
		t, ok := value.Time()
		return fail(ok && !t.IsZero(), message)
	}
}

// DateBetween rejects selected dates outside [first, last], compared by
// calendar day. A zero bound is open. Values without a date pass.
func DateBetween(first, last time.Time, options ...Option) Rule {
	message := resolveMessage(dateRangeMessage(first, last), options)
	return func(value Value) (string, bool) {
		t, ok := value.Time()
		if !ok || t.IsZero() {
			return "", false
		}
		day := t.Format(time.DateOnly)
		if !first.IsZero() && day < first.Format(time.DateOnly) {
			return message, true
		}
		if !last.IsZero() && day > last.Format(time.DateOnly) {
			return message, true
		}
		return "", false
	}
}

func dateRangeMessage(first, last time.Time) string {
	switch {
	case first.IsZero():
		return fmt.Sprintf(defaultDateBeforeMessage, last.Format(time.DateOnly))
	case last.IsZero():
		return fmt.Sprintf(defaultDateAfterMessage, first.Format(time.DateOnly))
	default:
		return fmt.Sprintf(defaultDateBetweenMessage, first.Format(time.DateOnly), last.Format(time.DateOnly))
	}
}

func isEmail(candidate string) bool {
	if candidate != strings.TrimSpace(candidate) {
		return false
	}
	addr, err := mail.ParseAddress(candidate)
	if err != nil || addr.Address != candidate || addr.Name != "" {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if strings.HasPrefix(domain, "[") || !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
