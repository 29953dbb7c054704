// Package osutil wraps the OS lookups jot depends on so tests can replace them.
package osutil

import "os"

// PathProvider abstracts directory resolution and environment lookups.
// Tests swap it to exercise failures in GetConfigPath, GetStorageDir and
// secret loading.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	Getenv(key string) string
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Getenv returns the value of the environment variable key.
func (DefaultPathProvider) Getenv(key string) string {
	return os.Getenv(key)
}

// Provider is the package-level instance. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores DefaultPathProvider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}
