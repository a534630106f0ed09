// Package cli wires the taskdeck commands: the board TUI by default,
// plus scriptable task, board, users, state, seed and serve commands.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/backend"
	"taskdeck/internal/config"
	"taskdeck/internal/store"
	"taskdeck/internal/tui"
)

// App carries flag state shared by every command.
type App struct {
	ConfigFile string
	Dir        string
	Server     string
	UserID     string
	PrettyJSON bool

	cfg *config.Config
}

// Config loads the effective configuration once, with flags overriding
// file and environment values.
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.ConfigFile)
	if err != nil {
		return nil, err
	}
	if a.Dir != "" {
		cfg.Dir = a.Dir
	}
	if a.Server != "" {
		cfg.Server = a.Server
	}
	if a.UserID != "" {
		cfg.UserID = a.UserID
	}
	a.cfg = cfg
	return cfg, nil
}

// Backend opens the configured backend: the HTTP client when a server
// URL is set, the local document store otherwise.
func (a *App) Backend() (backend.Backend, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Remote() {
		return api.NewClient(cfg.Server), nil
	}
	dir := cfg.Dir
	if dir == "" {
		dir, err = store.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return store.NewService(dir, cfg.Logger()), nil
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Kanban task board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive board
  taskdeck

  # Run the REST server
  taskdeck serve --addr :3001

  # Scriptable commands
  taskdeck task list
  taskdeck board
  taskdeck task move task-1 done
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive board.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Path to taskdeck.yaml")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory (default: discover or create .taskdeck)")
	cmd.PersistentFlags().StringVar(&app.Server, "server", "", "Remote taskdeck base URL (use HTTP instead of a local dir)")
	cmd.PersistentFlags().StringVar(&app.UserID, "user", "", "User id whose board state to load")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newTaskCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newSeedCmd(app))

	return cmd
}

func runTUI(app *App) error {
	cfg, err := app.Config()
	if err != nil {
		return err
	}
	b, err := app.Backend()
	if err != nil {
		return err
	}
	// The view cache lives in the data dir even against a remote server,
	// so reopening the board is warm either way.
	dir := cfg.Dir
	if dir == "" {
		if dir, err = store.DefaultDir(); err != nil {
			dir = ""
		}
	}
	return tui.Run(b, cfg.UserID, dir)
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}
