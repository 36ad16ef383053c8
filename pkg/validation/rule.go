package validation

// Rule inspects a value and returns a message with failed set to true when
// the value is rejected. Rules must not keep state between calls.
type Rule func(value Value) (message string, failed bool)

// Compose chains rules into a single Rule. The returned rule evaluates the
// inputs in order and stops at the first failure, returning its message.
// Nil rules are skipped.
func Compose(rules ...Rule) Rule {
	chain := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule != nil {
			chain = append(chain, rule)
		}
	}
	return func(value Value) (string, bool) {
		for _, rule := range chain {
			if message, failed := rule(value); failed {
				return message, true
			}
		}
		return "", false
	}
}

// Option customises a rule constructor.
type Option func(*ruleConfig)

type ruleConfig struct {
	message   string
	skipEmpty bool
}

// WithMessage replaces the default failure message of a rule.
func WithMessage(message string) Option {
	return func(cfg *ruleConfig) {
		if message != "" {
			cfg.message = message
		}
	}
}

// SkipEmpty lets empty values pass a rule that would otherwise reject them.
// Use it for optional fields that are only constrained when filled in.
func SkipEmpty() Option {
	return func(cfg *ruleConfig) {
		cfg.skipEmpty = true
	}
}

func resolveConfig(fallback string, options []Option) ruleConfig {
	cfg := ruleConfig{message: fallback}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func resolveMessage(fallback string, options []Option) string {
	return resolveConfig(fallback, options).message
}

// fail returns the message when ok is false.
func fail(ok bool, message string) (string, bool) {
	if ok {
		return "", false
	}
	return message, true
}
