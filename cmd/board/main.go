package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/board/internal/config"
	"github.com/tgienger/board/internal/db"
	"github.com/tgienger/board/internal/ids"
	"github.com/tgienger/board/internal/logging"
	"github.com/tgienger/board/internal/ui"
	"github.com/tgienger/board/internal/ui/views"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flags struct {
	configPath string
	dbPath     string
	driver     string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "board",
		Short:        "A terminal board of task groups",
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.SetVersionTemplate("board {{.Version}}\n")

	cmd.Flags().StringVar(&f.configPath, "config", "", "path to config.toml")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "path to the database file")
	cmd.Flags().StringVar(&f.driver, "driver", "", "database driver: sqlite3 (cgo) or sqlite (pure Go)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")
	return cmd
}

// loadConfig reads the config file and applies flags given on the command line
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.Store.Path = f.dbPath
	}
	if cmd.Flags().Changed("driver") {
		cfg.Store.Driver = f.driver
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = f.debug
	}
	return cfg, nil
}

type closingStore interface {
	views.GroupStore
	io.Closer
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, logCloser, err := logging.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer logCloser.Close()

	// Open the store; a failure is reported but the board still runs
	var store closingStore
	database, openErr := db.Open(ctx, cfg.Store.Path, cfg.Store.Driver)
	if openErr != nil {
		log.Error("open store", "path", cfg.Store.Path, "driver", cfg.Store.Driver, "err", openErr)
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", openErr)
		store = db.NewUnavailable(openErr)
	} else {
		count, err := database.GroupCount(ctx)
		if err != nil {
			log.Warn("count groups", "err", err)
		}
		log.Info("store opened", "path", database.Path(), "driver", cfg.Store.Driver, "groups", count)
		store = database
	}
	defer store.Close()

	app := ui.NewApp(ctx, store, views.Options{
		IDs:        ids.New(cfg.Board.IDStrategy, nil),
		Labels:     config.LabelsFor(cfg.Board.Locale),
		DateLayout: cfg.Board.DateLayout,
		Logger:     log,
	}, openErr)
	// runs before store.Close so queued writes land first
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
