package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/store"
)

func newSeedCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users and tasks into the local data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			if cfg.Remote() {
				return errors.New("seed works on a local data directory, not --server")
			}
			dir := cfg.Dir
			if dir == "" {
				dir, err = store.DefaultDir()
				if err != nil {
					return err
				}
			}
			svc := store.NewService(dir, cfg.Logger())

			if !reset {
				tasks, err := svc.GetAllTasks(cmd.Context())
				if err != nil {
					return err
				}
				if len(tasks) > 0 {
					return fmt.Errorf("data directory already has %d tasks; pass --reset to replace them", len(tasks))
				}
			}

			tasksN, usersN, err := svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tasks and %d users into %s\n", tasksN, usersN, dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Replace existing data with the demo set")
	return cmd
}
