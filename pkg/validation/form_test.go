package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

func registrationForm(t *testing.T) *validation.Form {
	t.Helper()
	form, err := validation.NewForm(
		validation.NewField("name", validation.Required()),
		validation.NewField("email", validation.Required(), validation.Email()),
		validation.NewField("birth_date", validation.DateRequired()),
		validation.NewField("password", validation.Required(), validation.MinLength(8), validation.PasswordComplexity()),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func fill(t *testing.T, form *validation.Form, values map[string]validation.Value) {
	t.Helper()
	for name, value := range values {
		if err := form.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func TestValidate_AllFieldsPass(t *testing.T) {
	form := registrationForm(t)
	fill(t, form, map[string]validation.Value{
		"name":       validation.Text("Ada"),
		"email":      validation.Text("ada@example.com"),
		"birth_date": validation.Date(time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC)),
		"password":   validation.Text("Pa55word!"),
	})

	result := validation.Validate(form)
	if !result.Valid {
		t.Fatalf("expected valid form, got errors %v", result.Errors)
	}
	if result.Err() != nil {
		t.Fatalf("expected nil error, got %v", result.Err())
	}
	if len(result.Fields()) != 0 {
		t.Fatalf("expected no failing fields, got %v", result.Fields())
	}
}

func TestValidate_SingleFailingField(t *testing.T) {
	form := registrationForm(t)
	fill(t, form, map[string]validation.Value{
		"name":       validation.Text("Ada"),
		"email":      validation.Text("ada@example.com"),
		"birth_date": validation.Date(time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC)),
		"password":   validation.Text("short"),
	})

	result := validation.Validate(form)
	if result.Valid {
		t.Fatalf("expected invalid form")
	}

	want := map[string]string{
		"password": "Value must have a length greater than or equal to 8.",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !result.Failed("password") || result.Failed("email") {
		t.Fatalf("unexpected Failed() answers")
	}
}

func TestValidate_EmptyFormReportsFirstMessagePerField(t *testing.T) {
	form := registrationForm(t)

	result := validation.Validate(form)
	if result.Valid {
		t.Fatalf("expected invalid form")
	}

	wantOrder := []string{"name", "email", "birth_date", "password"}
	if diff := cmp.Diff(wantOrder, result.Fields()); diff != "" {
		t.Fatalf("failing field order mismatch (-want +got):\n%s", diff)
	}

	verrs := validation.ExtractValidationErrors(result.Err())
	want := validation.ValidationErrors{
		{Field: "name", Message: "This field cannot be empty."},
		{Field: "email", Message: "This field cannot be empty."},
		{Field: "birth_date", Message: "Please select a date."},
		{Field: "password", Message: "This field cannot be empty."},
	}
	if diff := cmp.Diff(want, verrs); diff != "" {
		t.Fatalf("validation errors mismatch (-want +got):\n%s", diff)
	}
	if verrs.Get("birth_date") != "Please select a date." || !verrs.Has("email") {
		t.Fatalf("lookup helpers returned unexpected values")
	}
}

func TestValidate_DoesNotModifyForm(t *testing.T) {
	form := registrationForm(t)
	fill(t, form, map[string]validation.Value{"name": validation.Text("  Ada ")})

	before := form.Values()
	_ = validation.Validate(form)
	after := form.Values()

	if diff := cmp.Diff(before, after, cmp.AllowUnexported(validation.Value{})); diff != "" {
		t.Fatalf("form values changed (-before +after):\n%s", diff)
	}
}

func TestValidate_NilForm(t *testing.T) {
	if result := validation.Validate(nil); !result.Valid {
		t.Fatalf("nil form should be valid")
	}
}

func TestNewForm_Errors(t *testing.T) {
	_, err := validation.NewForm(validation.NewField("a"), validation.NewField("a"))
	if !errors.Is(err, validation.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}

	_, err = validation.NewForm(validation.NewField("  "))
	if !errors.Is(err, validation.ErrEmptyFieldName) {
		t.Fatalf("expected ErrEmptyFieldName, got %v", err)
	}
}

func TestForm_Accessors(t *testing.T) {
	form := registrationForm(t)

	if err := form.Set("missing", validation.Text("x")); !errors.Is(err, validation.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	if diff := cmp.Diff([]string{"name", "email", "birth_date", "password"}, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if form.Len() != 4 {
		t.Fatalf("len = %d, want 4", form.Len())
	}

	if err := form.Set("email", validation.Text("a@b.com")); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok := form.Value("email")
	if !ok || value.String() != "a@b.com" || value.Kind() != validation.KindText {
		t.Fatalf("unexpected value %v (ok=%v)", value, ok)
	}

	field, ok := form.Field("email")
	if !ok || field.DisplayName() != "email" {
		t.Fatalf("unexpected field %+v", field)
	}
}
