package system

import (
	"errors"
	"fmt"

	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/keyring"
	"github.com/amacleod/pulse/internal/storage/postgres"
)

// KeyringCmd manages the PostgreSQL connection string held in the OS keyring.
type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Show   KeyringShowCmd   `cmd:"" help:"Check whether a connection string is stored."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

type KeyringSetCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string (without embedded password)."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	if valid, err := postgres.ValidateConnString(c.ConnString); !valid {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("connection string must not embed a password; use environment variables or .pgpass")
		}
		return err
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringShowCmd struct{}

func (c *KeyringShowCmd) Run(ctx *cli.Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	// Never print the stored value itself.
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
