// Package security stores the warehouse password in the OS keyring so the
// config file never has to hold it in the clear.
package security

import (
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"snowreport/internal/config"
	"snowreport/pkg/errors"
	"snowreport/pkg/models"
)

const keyringService = "snowreport"

// KeyringRef is the config password value that routes lookup through the
// OS keyring.
const KeyringRef = "keyring:"

// CredentialManager handles secure storage and retrieval of the warehouse
// password.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a credential manager.
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{service: keyringService}
}

func (cm *CredentialManager) key(account, username string) string {
	return fmt.Sprintf("%s/%s", account, username)
}

// StorePassword saves the password for account/username in the keyring.
func (cm *CredentialManager) StorePassword(account, username, password string) error {
	if account == "" || username == "" {
		return errors.InvalidArgument("Account and username are required for credential storage")
	}

	if err := keyring.Set(cm.service, cm.key(account, username), password); err != nil {
		return errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to store password in keyring").
			WithSuggestions(
				"Check that a keyring service is available on this machine",
				"Store the password encrypted in the config file instead",
			)
	}
	return nil
}

// GetPassword retrieves the password for account/username from the keyring.
func (cm *CredentialManager) GetPassword(account, username string) (string, error) {
	password, err := keyring.Get(cm.service, cm.key(account, username))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to read password from keyring").
			WithContext("account", account).
			WithContext("user", username)
	}
	return password, nil
}

// DeletePassword removes the stored password for account/username.
func (cm *CredentialManager) DeletePassword(account, username string) error {
	if err := keyring.Delete(cm.service, cm.key(account, username)); err != nil {
		return errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to delete password from keyring")
	}
	return nil
}

// ResolvePassword materializes the configured password value: a "keyring:"
// reference reads the OS keyring, an "ENC[...]" value decrypts, anything
// else is taken literally.
func ResolvePassword(sf models.Snowflake) (string, error) {
	switch {
	case strings.HasPrefix(sf.Password, KeyringRef):
		return NewCredentialManager().GetPassword(sf.Account, sf.Username)
	case config.IsEncrypted(sf.Password):
		return config.DecryptPassword(sf.Password)
	default:
		return sf.Password, nil
	}
}
