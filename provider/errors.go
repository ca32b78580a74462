package provider

import "errors"

var (
	// ErrUnknownProvider means a local identity names no built-in or scripted adapter.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNotConfigured means an identity has no usable registry entry.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrInvalidRegistry is returned for registries that fail validation.
	ErrInvalidRegistry = errors.New("invalid provider registry")
)
