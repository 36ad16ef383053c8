package validation

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// PasswordPattern requires at least 8 characters, 2 digits and one symbol
// from !@#$&*~.
const PasswordPattern = `^(?=(?:.*\d){2,})(?=.*[!@#$&*~]).{8,}$`

const (
	defaultPatternMessage  = "Value does not match pattern."
	defaultPasswordMessage = "Password must be at least 8 characters with 2 numbers and 1 symbol (!@#$&*~)."

	// patternTimeout bounds backtracking on hostile input.
	patternTimeout = 250 * time.Millisecond
)

// Pattern is a compiled expression with lookaround support. Matching follows
// ECMAScript rules so \d and \w stay ASCII.
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// CompilePattern compiles expr for use with MatchesPattern.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", expr, err)
	}
	re.MatchTimeout = patternTimeout
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Match reports whether s satisfies the pattern. A match that exceeds the
// timeout counts as a mismatch.
func (p *Pattern) Match(s string) bool {
	if p == nil || p.re == nil {
		return false
	}
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// MatchesPattern rejects non-empty text that does not satisfy expr. It panics
// when expr does not compile; use CompilePattern and MatchesCompiled for
// expressions that come from configuration.
func MatchesPattern(expr string, options ...Option) Rule {
	return MatchesCompiled(MustCompilePattern(expr), options...)
}

// MatchesCompiled is MatchesPattern for a pattern compiled ahead of time.
func MatchesCompiled(p *Pattern, options ...Option) Rule {
	message := resolveMessage(defaultPatternMessage, options)
	return func(value Value) (string, bool) {
		if value.IsEmpty() {
			return "", false
		}
		return fail(p.Match(value.String()), message)
	}
}

var passwordPattern = MustCompilePattern(PasswordPattern)

// PasswordComplexity applies PasswordPattern.
func PasswordComplexity(options ...Option) Rule {
	return MatchesCompiled(passwordPattern, append([]Option{WithMessage(defaultPasswordMessage)}, options...)...)
}
