package commands

import (
	"errors"
	"fmt"
	"time"

	"exale/config"
	"exale/services"

	"github.com/spf13/cobra"
)

func addToken(topLevel *cobra.Command) {
	var uid, email, name string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for jwt auth mode",
		Example: `
exale token --uid=u1 --email=alice@exale.net --name="Alice Owner"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if uid == "" {
				return errors.New("--uid is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := services.CreateAccessToken(cfg.JWTSecret, uid, email, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "user id; the role is read from users/<uid>")
	cmd.Flags().StringVar(&email, "email", "", "e-mail claim")
	cmd.Flags().StringVar(&name, "name", "", "display name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	topLevel.AddCommand(cmd)
}
