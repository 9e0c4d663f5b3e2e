package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// checkTOMLKeys rejects TOML configuration files with keys Config does not
// know. Viper ignores unknown keys, which hides typos such as
// "distance_level".
func checkTOMLKeys(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return decodeTOML(data, &Config{})
}

// decodeTOML strictly decodes TOML into config
func decodeTOML(data []byte, config *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(config); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return fmt.Errorf("unknown configuration keys:\n%s", strictErr.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("invalid TOML at line %d, column %d: %w", row, col, err)
		}
		return fmt.Errorf("invalid TOML: %w", err)
	}
	return nil
}

// ParseTOML parses a TOML configuration over the defaults and validates it
func ParseTOML(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := decodeTOML(data, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
