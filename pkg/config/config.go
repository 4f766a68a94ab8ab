// Package config loads YAML tool configuration, expanding ${VAR} references from the
// environment before decoding.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that check themselves after decoding.
type Validator interface {
	Validate() error
}

// Load reads filename, expands environment variables and decodes it into target.
// When target implements Validator, its Validate method runs last.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filename, err)
	}

	if err := Decode(data, target); err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}

	return nil
}

// Decode is Load for configuration already held in memory.
func Decode[T any](data []byte, target *T) error {
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
	}

	return nil
}

// LoadOrDefault loads filename when it exists. A missing file leaves target as
// is, so preset defaults apply, but they are still validated.
func LoadOrDefault[T any](filename string, target *T) error {
	if filename == "" {
		return validate(target)
	}

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return validate(target)
	}

	return Load(filename, target)
}

func validate[T any](target *T) error {
	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}
