package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// decodeFromFile decodes a YAML file into result. Unknown keys are rejected.
func decodeFromFile(filename string, result any) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", filename, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(result); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", filename, err)
	}

	return nil
}
