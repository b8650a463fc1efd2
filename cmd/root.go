package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"snowreport/internal/config"
	"snowreport/internal/security"
	"snowreport/internal/ui"
	"snowreport/internal/warehouse"
	"snowreport/pkg/models"
)

var (
	cfgFile string
	noColor bool
	verbose bool
	quiet   bool

	rootCmd = &cobra.Command{
		Use:   "snowreport",
		Short: "Terminal analytics reports over Snowflake",
		Long: "snowreport composes CTE queries from named subqueries, runs them against\n" +
			"a Snowflake warehouse, caches the results for the session, and renders\n" +
			"paginated tables and terminal charts.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColor()
			}
			if cfgFile != "" {
				os.Setenv(config.EnvConfigFile, cfgFile)
			}
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.snowreport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
}

func initViper() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(config.GetConfigPath())
	viper.SetEnvPrefix("SNOWREPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay; 'snowreport setup' creates one
	}
}

// addDisplayFlags registers the rendering flags shared by the report
// commands.
func addDisplayFlags(fs *pflag.FlagSet, pageSize *int) {
	fs.IntVar(pageSize, "page-size", 0, "rows per page (default from config)")
}

// loadWarehouseConfig loads the config file and resolves the warehouse
// connection settings, including the password reference.
func loadWarehouseConfig() (*models.Config, warehouse.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, warehouse.Config{}, err
	}

	password, err := security.ResolvePassword(cfg.Snowflake)
	if err != nil {
		return nil, warehouse.Config{}, err
	}

	whConfig := warehouse.Config{
		Account:   cfg.Snowflake.Account,
		Username:  cfg.Snowflake.Username,
		Password:  password,
		Database:  cfg.Snowflake.Database,
		Schema:    cfg.Snowflake.Schema,
		Warehouse: cfg.Snowflake.Warehouse,
		Role:      cfg.Snowflake.Role,
	}

	if err := warehouse.ValidateConfig(whConfig); err != nil {
		return nil, warehouse.Config{}, fmt.Errorf("incomplete warehouse configuration: %w (run 'snowreport setup')", err)
	}

	return cfg, whConfig, nil
}

// definitionsDir returns the directory holding report plan definitions.
func definitionsDir(cfg *models.Config) string {
	if cfg.Reports.Directory != "" {
		return cfg.Reports.Directory
	}
	return filepath.Join(config.GetConfigPath(), "definitions")
}
