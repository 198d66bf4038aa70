package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"habitboard/internal/constants"
)

var (
	// ErrNotFound is returned when no sync credentials are stored in the keyring
	ErrNotFound = errors.New("sync credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetSyncConnection retrieves the group-sync database connection string from
// the OS keyring. Returns ErrNotFound if nothing is stored.
func GetSyncConnection() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetSyncConnection stores the group-sync connection string in the OS keyring.
func SetSyncConnection(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteSyncConnection removes the stored connection string.
func DeleteSyncConnection() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
