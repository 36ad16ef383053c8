package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readValues loads a flat name -> raw input map from a JSON or YAML file.
// Scalars of any type are taken as their literal text.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read values: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("cli: parse values %s: %w", path, err)
	}
	return values, nil
}
