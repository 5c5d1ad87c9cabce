// Package cli wires configuration, logging and the card store into the
// mtgcards commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"mtgcards/browse"
	"mtgcards/config"
	"mtgcards/export"
	"mtgcards/images"
	"mtgcards/logging"
	"mtgcards/store"
	"mtgcards/tui"
)

// ErrInvalidArgument is returned when a command argument is missing or
// malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// runTUI starts the interactive browser. Tests replace it.
var runTUI = tui.Run

// App holds the root command and the state shared by its subcommands.
type App struct {
	command *cli.Command
	stdout  io.Writer
	stderr  io.Writer

	config     *config.Config
	configPath string
	logger   *slog.Logger
	closeLog func() error
}

// New creates the mtgcards command writing to stdout and stderr.
func New(stdout, stderr io.Writer) *App {
	app := &App{stdout: stdout, stderr: stderr}

	app.command = &cli.Command{
		Name:      "mtgcards",
		Usage:     "Browse a bundled trading card list in the terminal",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "card file to load instead of the bundled one",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "append logs to this file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
		},
		Before: app.before,
		After:  app.after,
		Action: app.browseAction,
		Commands: []*cli.Command{
			{
				Name:   "browse",
				Usage:  "open the interactive card browser (default)",
				Action: app.browseAction,
			},
			{
				Name:  "list",
				Usage: "print the card list after searching and sorting",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "only cards whose name contains this text",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "sort key: name or number",
					},
					&cli.BoolFlag{
						Name:  "desc-name",
						Usage: "sort names in descending order",
					},
					&cli.BoolFlag{
						Name:  "desc-number",
						Usage: "sort collector numbers in descending order",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output format: table or csv",
						Value:   string(export.FormatTable),
					},
				},
				Action: app.listAction,
			},
			{
				Name:      "search",
				Usage:     "fuzzy search card names, closest first",
				ArgsUsage: "<query>",
				Action:    app.searchAction,
			},
			{
				Name:  "config",
				Usage: "manage the configuration file",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "write the default configuration to the config path",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "overwrite an existing configuration file",
							},
						},
						Action: app.configInitAction,
					},
				},
			},
		},
	}

	return app
}

// Run executes the command line in args.
func (app *App) Run(ctx context.Context, args []string) error {
	return app.command.Run(ctx, args)
}

// before loads the configuration, applies flag overrides and sets up logging.
func (app *App) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return ctx, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("data") {
		cfg.Data.Path = cmd.String("data")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("invalid configuration %q: %w", path, err)
	}

	// The browser owns the terminal, so without a log file its logs are
	// dropped; the other commands log to stderr.
	var fallback io.Writer = app.stderr
	if isBrowse(cmd) {
		fallback = nil
	}

	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level, fallback)
	if err != nil {
		return ctx, fmt.Errorf("set up logging: %w", err)
	}

	app.config = cfg
	app.configPath = path
	app.logger = logger
	app.closeLog = closeLog
	app.logger.Debug("configuration loaded", "path", path)

	return ctx, nil
}

// isBrowse reports whether the command line runs the interactive browser.
func isBrowse(cmd *cli.Command) bool {
	first := cmd.Args().First()
	return first == "" || first == "browse"
}

func (app *App) after(ctx context.Context, cmd *cli.Command) error {
	if app.closeLog == nil {
		return nil
	}
	return app.closeLog()
}

func (app *App) openStore() *store.Store {
	return store.Open(app.config.Data.Path, app.logger)
}

func (app *App) browseAction(ctx context.Context, cmd *cli.Command) error {
	timeout, err := app.config.GetImageTimeout()
	if err != nil {
		return err
	}

	loader, err := images.New(images.Options{
		Enabled:       app.config.Images.Enabled,
		CacheDir:      app.config.Images.CacheDir,
		Timeout:       timeout,
		RatePerSecond: app.config.Images.RatePerSecond,
		Logger:        app.logger,
	})
	if err != nil {
		app.logger.Warn("image loading disabled", "error", err)
		loader = images.Disabled()
	}

	defaultSort, err := app.config.GetDefaultSort()
	if err != nil {
		return err
	}

	return runTUI(ctx, tui.Options{
		Store:         app.openStore(),
		Loader:        loader,
		Logger:        app.logger,
		Columns:       app.config.Browse.Columns,
		DragThreshold: app.config.Browse.DragThreshold,
		DefaultSort:   defaultSort,
	})
}

func (app *App) listAction(ctx context.Context, cmd *cli.Command) error {
	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	sortValue := cmd.String("sort")
	if sortValue == "" {
		sortValue = app.config.Browse.DefaultSort
	}
	sortKey, err := browse.ParseSortKey(sortValue)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	vm := browse.New(app.openStore().Cards())
	vm.SetSearchText(cmd.String("search"))
	vm.SetSortKey(sortKey)
	if cmd.Bool("desc-name") {
		vm.SetDirection(browse.SortByName, browse.Descending)
	}
	if cmd.Bool("desc-number") {
		vm.SetDirection(browse.SortByCollectorNumber, browse.Descending)
	}

	return export.Write(app.stdout, vm.Cards(), format)
}

func (app *App) searchAction(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("%w: search needs a query", ErrInvalidArgument)
	}

	results := app.openStore().Search(query)
	if len(results) == 0 {
		fmt.Fprintf(app.stdout, "No cards match %q.\n", query)
		return nil
	}

	return export.Write(app.stdout, results, export.FormatTable)
}

func (app *App) configInitAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(app.configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s already exists, use --force to overwrite", ErrInvalidArgument, app.configPath)
	}

	if err := config.DefaultConfig().Save(app.configPath); err != nil {
		return err
	}

	app.logger.Info("default configuration written", "path", app.configPath)
	fmt.Fprintf(app.stdout, "Wrote default configuration to %s\n", app.configPath)
	return nil
}
