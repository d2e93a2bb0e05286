package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/keyring"
	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
	"github.com/julianstephens/dayrail/internal/utils"
)

type ConfigCmd struct {
	Show             ConfigShowCmd             `cmd:"" help:"Show the effective configuration." default:"1"`
	SetConnection    ConfigSetConnectionCmd    `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" name:"delete-connection" help:"Remove the stored connection string."`
	SetTimezone      ConfigSetTimezoneCmd      `cmd:"" name:"set-timezone" help:"Store the timezone used to decide today's date."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	if ctx.Config != nil {
		ctx.printf("Config file: %s\n", ctx.Config.Path())
		database := ctx.Config.Database
		if postgres.IsConnString(database) {
			database = maskPassword(database)
		}
		ctx.printf("Database:    %s\n", database)
		ctx.printf("Log dir:     %s\n", ctx.Config.LogPath())
		ctx.printf("Log format:  %s\n", ctx.Config.LogFormat)
	}
	if f := logger.File(); f != "" {
		ctx.printf("Log file:    %s\n", f)
	}
	ctx.printf("Storage:     %s\n", ctx.Store.GetConfigPath())
	ctx.printf("Timezone:    %s\n", ctx.Tracker.Now().Location())

	dayType, err := ctx.Tracker.DayType()
	if err != nil {
		return err
	}
	ctx.printf("Day type:    %s\n", dayType)
	return nil
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !postgres.IsConnString(c.ConnectionString) && !strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a PostgreSQL URL or key=value DSN")
	}

	if err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is an acceptable home for a password, unlike config.yaml
		ctx.println("Note: the connection string carries a password; it is stored only in the OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored in OS keyring")
	ctx.printf("  Set `database: %s` in config.yaml to use it.\n", constants.KeyringDatabase)
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (c *ConfigDeleteConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.println("✓ Connection string deleted from OS keyring")
	return nil
}

type ConfigSetTimezoneCmd struct {
	Timezone string `arg:"" help:"IANA timezone name, or Local."`
}

func (c *ConfigSetTimezoneCmd) Run(ctx *Context) error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if err := ctx.Store.SetConfig(constants.SettingTimezone, c.Timezone); err != nil {
		return fmt.Errorf("failed to save timezone: %w", err)
	}
	ctx.printf("Timezone set to %s\n", c.Timezone)
	return nil
}

// maskPassword hides the password of a URL or DSN connection string
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
