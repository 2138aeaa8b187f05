package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/fadilmartias/life-wheel/internal/wizard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewWizardCommand creates the 'lifewheel wizard' command
func NewWizardCommand() *cobra.Command {
	var (
		url      string
		token    string
		timeout  time.Duration
		wheelOut string
		noColor  bool
	)
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Take the assessment in the terminal",
		Long: `Walk through the Life Wheel against a running server. Progress is
stored server side, so quitting and starting again resumes where you left off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("a session token is required (--token or LIFEWHEEL_TOKEN)")
			}
			if noColor {
				color.NoColor = true
			}

			log, err := logger.New("development")
			if err != nil {
				return err
			}
			defer log.Sync()

			client := wizard.NewClient(url, token, timeout)
			cfg, err := client.FetchConfig(cmd.Context())
			if err != nil {
				log.Warn("could not load client config, using defaults", "error", err)
				cfg = client.Config()
			}
			if cfg.DisplayName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Hi %s!\n", cfg.DisplayName)
			}

			opts := []wizard.RunnerOption{wizard.WithLogger(log)}
			if wheelOut != "" {
				opts = append(opts, wizard.WithWheelFile(wheelOut))
			}
			runner := wizard.NewRunner(client, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&url, "url", envDefault("LIFEWHEEL_URL", "http://localhost:8080"), "server base URL")
	cmd.Flags().StringVar(&token, "token", os.Getenv("LIFEWHEEL_TOKEN"), "session token (see 'lifewheel token')")
	cmd.Flags().DurationVar(&timeout, "timeout", wizard.DefaultTimeout, "per-request timeout")
	cmd.Flags().StringVar(&wheelOut, "wheel-out", "", "keep a PNG of the wheel updated at this path")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
