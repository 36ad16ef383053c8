package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

func recordingRule(name string, fails bool, calls *[]string) validation.Rule {
	return func(validation.Value) (string, bool) {
		*calls = append(*calls, name)
		if fails {
			return name + " failed", true
		}
		return "", false
	}
}

func TestCompose_FirstFailureWins(t *testing.T) {
	var calls []string
	rule := validation.Compose(
		recordingRule("first", false, &calls),
		recordingRule("second", true, &calls),
		recordingRule("third", true, &calls),
	)

	message, failed := rule(validation.Text("anything"))
	if !failed {
		t.Fatalf("expected composed rule to fail")
	}
	if message != "second failed" {
		t.Fatalf("message = %q, want %q", message, "second failed")
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("evaluated rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_AllPass(t *testing.T) {
	var calls []string
	rule := validation.Compose(
		recordingRule("a", false, &calls),
		nil,
		recordingRule("b", false, &calls),
	)

	message, failed := rule(validation.Text("x"))
	if failed || message != "" {
		t.Fatalf("expected pass, got (%q, %v)", message, failed)
	}
	if diff := cmp.Diff([]string{"a", "b"}, calls); diff != "" {
		t.Fatalf("evaluated rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_Empty(t *testing.T) {
	if _, failed := validation.Compose()(validation.Empty()); failed {
		t.Fatalf("empty composition must pass")
	}
}

func TestCompose_RequiredBeforeEmail(t *testing.T) {
	rule := validation.Compose(validation.Required(), validation.Email())

	message, failed := rule(validation.Text(""))
	if !failed {
		t.Fatalf("expected failure for empty input")
	}
	if message != "This field cannot be empty." {
		t.Fatalf("message = %q, want required message", message)
	}

	message, _ = rule(validation.Text("nope"))
	if message != "This field requires a valid email address." {
		t.Fatalf("message = %q, want email message", message)
	}
}

func TestCompose_DoesNotMutateValue(t *testing.T) {
	value := validation.Text("  padded  ")
	rule := validation.Compose(validation.Required(), validation.MinLength(3), validation.MaxLength(20))
	if _, failed := rule(value); failed {
		t.Fatalf("unexpected failure")
	}
	if value.String() != "  padded  " {
		t.Fatalf("value changed to %q", value.String())
	}
}
