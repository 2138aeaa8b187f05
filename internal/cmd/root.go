package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the root command for the lifewheel tool
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifewheel",
		Short: "Life Wheel assessment tooling",
		Long: `lifewheel works with the Life Wheel assessment service.

It can mint development session tokens, render wheel images from a set of
ratings, run the database migration and walk through the assessment in a
terminal against a running server.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is fine, the environment may already be set
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(NewTokenCommand())
	cmd.AddCommand(NewWheelCommand())
	cmd.AddCommand(NewWizardCommand())
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}
