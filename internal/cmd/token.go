package cmd

import (
	"fmt"
	"time"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/fadilmartias/life-wheel/internal/middleware"
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the 'lifewheel token' command
func NewTokenCommand() *cobra.Command {
	var (
		login string
		name  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a session token for local testing",
		Long: `Sign a session token with AUTH_JWT_SECRET. Send it as
"Authorization: Bearer <token>" or set it as the session cookie.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}
			secret := []byte(config.LoadAuthConfig().JWTSecret)
			tok, err := middleware.SignToken(secret, args[0], login, name, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "login name stored in the token")
	cmd.Flags().StringVar(&name, "name", "", "display name used in AI prompts")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
