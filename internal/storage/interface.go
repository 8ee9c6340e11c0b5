package storage

import "errors"

// ErrNotLoaded is returned by key operations on a provider that was never
// initialized or loaded.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a durable string key-value slot holding the app's JSON records.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access. Get reports ok=false for a missing key.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
