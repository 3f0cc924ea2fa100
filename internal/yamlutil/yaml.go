// Package yamlutil keeps the YAML library behind a small decoding API.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps accepted documents at 1MB.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeOption adjusts decoding.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict bool
}

// Strict rejects keys that have no matching field in the destination.
func Strict() DecodeOption {
	return func(c *decodeConfig) { c.strict = true }
}

// Decode unmarshals data into v.
func Decode(data []byte, v any, opts ...DecodeOption) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var yamlOpts []yaml.DecodeOption
	if cfg.strict {
		yamlOpts = append(yamlOpts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode marshals v, used to print the effective configuration.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
