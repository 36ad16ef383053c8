// Package validation evaluates form field values against ordered rule lists.
//
// A Rule inspects a Value and reports a human readable message when it
// rejects it. Compose chains rules so the first failure wins and later rules
// are never evaluated. Fields pair a name with a value and its rules, a Form
// keeps fields in declaration order, and Validate evaluates every field once,
// surfacing only the first failing message per field:
//
//	form, _ := validation.NewForm(
//	    validation.NewField("email", validation.Required(), validation.Email()),
//	    validation.NewField("password", validation.Required(), validation.PasswordComplexity()),
//	)
//	_ = form.Set("email", validation.Text("a@b.com"))
//	result := validation.Validate(form)
//	if !result.Valid {
//	    fmt.Println(result.Message("password"))
//	}
//
// Rules never mutate values and carry no state, so they can be shared between
// forms.
package validation
