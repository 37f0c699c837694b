// Package keyring keeps store connection strings in the OS keyring so that
// passwords never have to appear on the command line or in config files.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/routinely/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnsupportedScheme is returned for connection strings no remote store accepts
	ErrUnsupportedScheme = errors.New("connection string must start with postgres://, postgresql://, redis://, rediss://, mongodb:// or mongodb+srv://")
)

var remoteSchemes = []string{"postgres://", "postgresql://", "redis://", "rediss://", "mongodb://", "mongodb+srv://"}

// IsRemote reports whether connStr names a remote store.
func IsRemote(connStr string) bool {
	for _, s := range remoteSchemes {
		if strings.HasPrefix(connStr, s) {
			return true
		}
	}
	return false
}

// Get returns the secret stored under user.
func Get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Set stores value under user.
func Set(user, value string) error {
	if value == "" {
		return errors.New("value cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored under user.
func Delete(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the store connection string.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return Get(constants.DefaultKeyringUser)
}

// SetConnectionString stores a remote store connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !IsRemote(connStr) {
		return ErrUnsupportedScheme
	}
	return Set(constants.DefaultKeyringUser, connStr)
}

func DeleteConnectionString() error {
	return Delete(constants.DefaultKeyringUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// A lookup that fails with ErrNotFound still proves the keyring answers.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
