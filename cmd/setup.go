package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"snowreport/internal/config"
	"snowreport/internal/security"
	"snowreport/internal/ui"
	"snowreport/internal/warehouse"
)

const (
	storeKeyring   = "OS keyring (recommended)"
	storeEncrypted = "Encrypted in config file"
	storePlaintext = "Plaintext in config file"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the warehouse connection interactively",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ui.ShowHeader("snowreport setup")

	qs := []*survey.Question{
		{
			Name: "account",
			Prompt: &survey.Input{
				Message: "Snowflake account (e.g. xy12345.us-east-1):",
				Default: cfg.Snowflake.Account,
			},
			Validate: survey.Required,
		},
		{
			Name: "username",
			Prompt: &survey.Input{
				Message: "Username:",
				Default: cfg.Snowflake.Username,
			},
			Validate: survey.Required,
		},
		{
			Name: "role",
			Prompt: &survey.Input{
				Message: "Role:",
				Default: cfg.Snowflake.Role,
			},
		},
		{
			Name: "warehouse",
			Prompt: &survey.Input{
				Message: "Warehouse:",
				Default: cfg.Snowflake.Warehouse,
			},
			Validate: survey.Required,
		},
		{
			Name: "database",
			Prompt: &survey.Input{
				Message: "Database:",
				Default: cfg.Snowflake.Database,
			},
		},
		{
			Name: "schema",
			Prompt: &survey.Input{
				Message: "Schema:",
				Default: cfg.Snowflake.Schema,
			},
		},
	}

	answers := struct {
		Account   string
		Username  string
		Role      string
		Warehouse string
		Database  string
		Schema    string
	}{}

	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	cfg.Snowflake.Account = answers.Account
	cfg.Snowflake.Username = answers.Username
	cfg.Snowflake.Role = answers.Role
	cfg.Snowflake.Warehouse = answers.Warehouse
	cfg.Snowflake.Database = answers.Database
	cfg.Snowflake.Schema = answers.Schema

	password, err := ui.Password("Password:", "Used to connect to Snowflake")
	if err != nil {
		return err
	}

	storage, err := ui.Select("Password storage:", []string{storeKeyring, storeEncrypted, storePlaintext})
	if err != nil {
		return err
	}

	switch storage {
	case storeKeyring:
		cm := security.NewCredentialManager()
		if err := cm.StorePassword(cfg.Snowflake.Account, cfg.Snowflake.Username, password); err != nil {
			return err
		}
		cfg.Snowflake.Password = security.KeyringRef
	case storeEncrypted:
		encrypted, err := config.EncryptPassword(password)
		if err != nil {
			return err
		}
		cfg.Snowflake.Password = encrypted
	default:
		cfg.Snowflake.Password = password
	}

	if test, err := ui.Confirm("Test the connection now?", true); err == nil && test {
		svc := warehouse.NewService(warehouse.Config{
			Account:   cfg.Snowflake.Account,
			Username:  cfg.Snowflake.Username,
			Password:  password,
			Database:  cfg.Snowflake.Database,
			Schema:    cfg.Snowflake.Schema,
			Warehouse: cfg.Snowflake.Warehouse,
			Role:      cfg.Snowflake.Role,
		})
		if err := svc.Connect(); err != nil {
			ui.ShowError(err)
			if keep, _ := ui.Confirm("Save the configuration anyway?", false); !keep {
				return fmt.Errorf("setup aborted")
			}
		} else {
			svc.Close()
			ui.ShowSuccess("Connection verified")
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	ui.ShowSuccess("Configuration saved to " + config.GetConfigFile())
	return nil
}
