package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ouraiii/LearningJourney/internal/keyring"
	"github.com/ouraiii/LearningJourney/internal/storage"
)

type KeyringCmd struct {
	Set   KeyringSetCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Clear KeyringClearCmd `cmd:"" help:"Remove the stored connection string."`
}

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if !storage.IsPostgresURL(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// passwords are fine here, the keyring is encrypted
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Fprintln(ctx.out(), "✓ Connection string stored successfully in OS keyring")
	return nil
}

type KeyringClearCmd struct{}

func (cmd *KeyringClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}

	fmt.Fprintln(ctx.out(), "✓ Connection string deleted from OS keyring")
	return nil
}
