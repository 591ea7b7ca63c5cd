package commands

import (
	"exale/config"
	"exale/connection"

	"github.com/spf13/cobra"
)

func addServe(topLevel *cobra.Command) {
	var port, backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API",
		Example: `
exale serve
exale serve --backend=memory --port=9090
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return connection.StartServer(cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides EXALE_PORT)")
	cmd.Flags().StringVar(&backend, "backend", "", "document backend: firestore, sqlite or memory")
	topLevel.AddCommand(cmd)
}
