package config

import "errors"

var (
	// ErrInvalidDimensions indicates a grid side outside the supported range.
	ErrInvalidDimensions = errors.New("config: invalid grid dimensions")

	// ErrInvalidDelay indicates a non-positive step delay.
	ErrInvalidDelay = errors.New("config: step delay must be positive")

	ErrUnknownPreset = errors.New("config: unknown preset")
)
