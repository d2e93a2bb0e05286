// Package keyring keeps the PostgreSQL connection string out of the config
// file by storing it in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dayrail/internal/constants"
)

var (
	// ErrNotFound is returned when no credential is stored for the account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credential is a single secret in the OS keyring
type Credential struct {
	Service string
	Account string
}

// Connection is the credential holding the database connection string
var Connection = Credential{Service: constants.AppName, Account: constants.DefaultKeyringUser}

func (c Credential) Get() (string, error) {
	secret, err := gokeyring.Get(c.Service, c.Account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (c Credential) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := gokeyring.Set(c.Service, c.Account, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", c.Account, err)
	}
	return nil
}

func (c Credential) Delete() error {
	if err := gokeyring.Delete(c.Service, c.Account); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", c.Account, err)
	}
	return nil
}

// GetConnectionString returns the stored database connection string
func GetConnectionString() (string, error) {
	return Connection.Get()
}

// SetConnectionString stores the database connection string
func SetConnectionString(connStr string) error {
	return Connection.Set(connStr)
}

// DeleteConnectionString removes the stored database connection string
func DeleteConnectionString() error {
	return Connection.Delete()
}

// IsAvailable probes the keyring with a read. A missing entry still means the
// keyring answered.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}
