// Package formdef describes forms declaratively and compiles them into
// validation forms. Definitions load from JSON or YAML files, from the
// embedded builtin set, or from an OpenAPI component schema. Rule specs use
// canonical kinds (required, email, minLength, maxLength, pattern, password,
// dateRequired, dateBetween) with string parameters so definitions stay
// stable when serialised.
package formdef
