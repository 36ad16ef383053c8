package formdef

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const orderExtensionKey = "x-order"

// FromOpenAPI derives a definition from the object schema registered under
// components.schemas[schemaName]. Required properties get a required (or
// dateRequired) rule, and string formats and constraints map onto the
// matching rules. Properties are ordered by x-order, then by name.
func FromOpenAPI(ctx context.Context, raw []byte, schemaName string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}
	if len(raw) == 0 {
		return Definition{}, errors.New("formdef openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("formdef openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return Definition{}, errors.New("formdef openapi: document has no component schemas")
	}

	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return Definition{}, fmt.Errorf("formdef openapi: schema %q not found", schemaName)
	}
	schema := ref.Value
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return Definition{}, fmt.Errorf("formdef openapi: schema %q is not an object", schemaName)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := propertyOrder(schema.Properties[names[i]]), propertyOrder(schema.Properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})

	def := Definition{
		ID:          schemaName,
		Title:       schema.Title,
		Description: schema.Description,
		Source:      "openapi:" + schemaName,
	}
	for _, name := range names {
		_, isRequired := required[name]
		def.Fields = append(def.Fields, fieldFromSchema(name, schema.Properties[name], isRequired))
	}

	if err := Check(def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func fieldFromSchema(name string, ref *openapi3.SchemaRef, required bool) FieldDefinition {
	field := FieldDefinition{Name: name, Kind: FieldKindText}
	if ref == nil || ref.Value == nil {
		if required {
			field.Rules = append(field.Rules, RuleSpec{Kind: RuleRequired})
		}
		return field
	}
	src := ref.Value
	field.Label = src.Title
	field.Help = src.Description
	if s, ok := src.Default.(string); ok {
		field.Default = s
	}

	switch src.Format {
	case "email":
		field.Kind = FieldKindEmail
	case "date":
		field.Kind = FieldKindDate
	case "password":
		field.Kind = FieldKindPassword
	}

	if required {
		if field.Kind == FieldKindDate {
			field.Rules = append(field.Rules, RuleSpec{Kind: RuleDateRequired})
		} else {
			field.Rules = append(field.Rules, RuleSpec{Kind: RuleRequired})
		}
	}
	if field.Kind == FieldKindEmail {
		field.Rules = append(field.Rules, RuleSpec{Kind: RuleEmail})
	}
	if src.MinLength > 0 {
		params := map[string]string{"value": strconv.FormatUint(src.MinLength, 10)}
		if !required {
			params["allowEmpty"] = "true"
		}
		field.Rules = append(field.Rules, RuleSpec{Kind: RuleMinLength, Params: params})
	}
	if src.MaxLength != nil {
		field.Rules = append(field.Rules, RuleSpec{
			Kind:   RuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		field.Rules = append(field.Rules, RuleSpec{
			Kind:   RulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	field.Sanitize = field.Kind == FieldKindText || field.Kind == FieldKindEmail
	return field
}

func propertyOrder(ref *openapi3.SchemaRef) float64 {
	const unordered = 1 << 30
	if ref == nil || ref.Value == nil {
		return unordered
	}
	raw, ok := ref.Value.Extensions[orderExtensionKey]
	if !ok {
		return unordered
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return unordered
}
