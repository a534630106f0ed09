package cli

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/store"
	"taskdeck/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST server over the local data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr
			}
			dir := cfg.Dir
			if dir == "" {
				dir, err = store.DefaultDir()
				if err != nil {
					return err
				}
			}
			log := cfg.Logger()
			svc := store.NewService(dir, log)
			srv := web.NewServer(svc, nil, log)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :3001)")
	return cmd
}
