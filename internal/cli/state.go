package cli

import (
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			users, err := b.GetAllUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, app, users)
		},
	}
}

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and mutate per-user board state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the user's app state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			b, err := app.Backend()
			if err != nil {
				return err
			}
			st, err := b.GetAppState(cmd.Context(), cfg.UserID)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, st)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the user's app state to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			b, err := app.Backend()
			if err != nil {
				return err
			}
			return b.ResetAppState(cmd.Context(), cfg.UserID)
		},
	})

	bookmark := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage bookmarks",
	}
	bookmark.AddCommand(&cobra.Command{
		Use:   "add <task-id>",
		Short: "Bookmark a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			b, err := app.Backend()
			if err != nil {
				return err
			}
			st, err := b.AddBookmark(cmd.Context(), cfg.UserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, app, st.Bookmarks)
		},
	})
	bookmark.AddCommand(&cobra.Command{
		Use:   "rm <task-id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			b, err := app.Backend()
			if err != nil {
				return err
			}
			st, err := b.RemoveBookmark(cmd.Context(), cfg.UserID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, app, st.Bookmarks)
		},
	})
	cmd.AddCommand(bookmark)

	return cmd
}
