// Package codec decodes the structured text formats used for document
// metadata and site configuration (YAML and TOML) behind one small surface,
// so callers never import the underlying libraries directly.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoder input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData         = errors.New("codec: nil or empty data")
	ErrNilDestination  = errors.New("codec: nil destination pointer")
	ErrInputTooLarge   = errors.New("codec: input exceeds maximum size")
	ErrUnknownField    = errors.New("codec: unknown field")
	ErrUnsupportedType = errors.New("codec: unsupported file type")
)

// UnmarshalFunc decodes data into v.
type UnmarshalFunc func(data []byte, v any) error

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalYAML decodes YAML, ignoring fields v does not declare.
func UnmarshalYAML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: yaml: %w", err)
	}
	return nil
}

// UnmarshalYAMLStrict rejects unknown fields in the input.
func UnmarshalYAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("codec: yaml: %w", err)
	}
	return nil
}

// UnmarshalTOML decodes TOML, ignoring keys v does not declare.
func UnmarshalTOML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("codec: toml: %w", err)
	}
	return nil
}

// UnmarshalTOMLStrict rejects keys that v does not declare.
func UnmarshalTOMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return fmt.Errorf("codec: toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
	}
	return nil
}

// ForPath picks the lenient decoder matching the file extension of path.
func ForPath(path string) (UnmarshalFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return UnmarshalTOML, nil
	case ".yaml", ".yml":
		return UnmarshalYAML, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(path))
	}
}
