package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/board"
	"taskdeck/internal/model"
)

// newBoardCmd prints the resolved columns: the same filter, sort and
// sequence pipeline the TUI uses, honoring the user's saved app state.
func newBoardCmd(app *App) *cobra.Command {
	var asJSON bool
	var query string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the resolved board columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}
			b, err := app.Backend()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			tasks, err := b.GetAllTasks(ctx)
			if err != nil {
				return err
			}
			users, err := b.GetAllUsers(ctx)
			if err != nil {
				return err
			}
			st, err := b.GetAppState(ctx, cfg.UserID)
			if err != nil {
				return err
			}

			filter := model.NewFilterState()
			filter.Query = query
			filtered := board.Filter(tasks, filter, st.Bookmarks)
			grouped := board.Resolve(filtered, st.ColumnSortConfigs, st.Sequences, board.UserIndex(users))

			if asJSON {
				return printJSON(cmd, app, grouped)
			}

			out := cmd.OutOrStdout()
			for _, status := range model.Statuses() {
				col := grouped[status]
				fmt.Fprintf(out, "%s (%d) · %s\n", status, len(col),
					board.Indicator(status, st.ColumnSortConfigs, st.Sequences))
				for _, t := range col {
					fmt.Fprintf(out, "  %-14s %-8s %s\n", t.ID, t.Priority, t.Title)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the grouped board as JSON")
	cmd.Flags().StringVar(&query, "query", "", "Filter tasks by search query")
	return cmd
}
