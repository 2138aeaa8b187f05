package cmd

import (
	"fmt"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/fadilmartias/life-wheel/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the 'lifewheel migrate' command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the results table",
		Long: `Run the schema migration against the database configured by the
DB_* environment variables (DB_DRIVER=postgres|sqlite).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConfig := config.LoadDBConfig()
			db, err := database.Open(dbConfig, config.LoadAppConfig().Env)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			target := dbConfig.Name
			if dbConfig.Driver == config.DriverSQLite {
				target = dbConfig.Path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s migrated %s (%s)\n",
				color.New(color.FgGreen).Sprint("✓"), target, dbConfig.Driver)
			return nil
		},
	}
}
