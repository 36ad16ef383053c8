package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/tui"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

type report struct {
	Form   string            `json:"form"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// evaluate fills the form built from def with raw inputs and validates it.
// Inputs that could not be parsed replace the rule message for their field.
func evaluate(def formdef.Definition, raw map[string]string) (report, error) {
	form, err := formdef.Build(def)
	if err != nil {
		return report{}, err
	}
	issues, err := formdef.Fill(form, def, raw)
	if err != nil {
		return report{}, err
	}
	result := validation.Validate(form)

	out := report{Form: def.ID, Valid: result.Valid && len(issues) == 0}
	if out.Valid {
		return out, nil
	}
	out.Errors = make(map[string]string, len(result.Errors)+len(issues))
	for name, msg := range result.Errors {
		out.Errors[name] = msg
	}
	for name, msg := range issues {
		out.Errors[name] = msg
	}
	return out, nil
}

func writeReport(w io.Writer, def formdef.Definition, rep report, format tui.OutputFormat) error {
	if format == tui.OutputFormatJSON {
		payload, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}

	if rep.Valid {
		_, err := fmt.Fprintf(w, "%s: valid\n", def.DisplayTitle())
		return err
	}
	for _, field := range def.Fields {
		msg, ok := rep.Errors[field.Name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", field.DisplayLabel(), msg); err != nil {
			return err
		}
	}
	return nil
}
