package tui

import (
	"fmt"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

const secretMask = "********"

type entry struct {
	name  string
	value string
}

func (s *Session) serialize(def formdef.Definition, form *validation.Form) ([]byte, error) {
	entries := make([]entry, 0, len(def.Fields))
	for _, field := range def.Fields {
		value, _ := form.Value(field.Name)
		text := formdef.FormatValue(field, value)
		if field.InputKind() == formdef.FieldKindPassword && !s.revealSecrets && text != "" {
			text = secretMask
		}
		entries = append(entries, entry{name: field.Name, value: text})
	}

	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(entries)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(entries)), nil
	default:
		return jsonBytes(entries)
	}
}

func encodeForm(entries []entry) string {
	values := url.Values{}
	for _, e := range entries {
		values.Set(e.name, e.value)
	}
	return values.Encode()
}

func prettyPrint(entries []entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s=%s\n", e.name, e.value)
	}
	return b.String()
}

func jsonBytes(entries []entry) ([]byte, error) {
	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.name] = e.value
	}
	return json.Marshal(values)
}
