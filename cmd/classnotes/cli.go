package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/history"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/internal/watcher"
)

// newCLIApp creates the CLI application. Records and history go to out.
func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "classnotes",
		Usage:   "Turn yesterday's class recording into notes on Drive and Discord",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "YAML config file (optional)"},
			&cli.StringFlag{Name: "env", Value: ".env", Usage: "dotenv file with secrets (optional)"},
		},
		Commands: []*cli.Command{
			runCmd(out),
			watchCmd(out),
			historyCmd(out),
		},
	}
	// Errors are printed once by main.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadConfig reads the config file, the dotenv file and the environment,
// then fills defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(c.String("env")); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.Load(c.String("config"))
	if errors.Is(err, fs.ErrNotExist) && !c.IsSet("config") {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.SetDefaults()
	return cfg, nil
}

func runCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Scrape yesterday's class and run the whole pipeline",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "abort-if-no-class", Usage: "Stop when no class is found instead of reusing the previous artifacts"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Bool("abort-if-no-class") {
				cfg.Pipeline.AbortOnNoClass = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ValidatePortal(); err != nil {
				return err
			}

			log := logger.New(cfg.Logging.Level)
			p, cleanup, err := buildPipeline(c.Context, cfg, log, true)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := p.Run(c.Context)
			if err != nil {
				return err
			}
			return outputJSON(out, rec)
		},
	}
}

func watchCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Process recordings dropped into the inbox folder",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.New(cfg.Logging.Level)
			p, cleanup, err := buildPipeline(c.Context, cfg, log, false)
			if err != nil {
				return err
			}
			defer cleanup()

			handler := func(ctx context.Context, path string) error {
				rec, err := p.RunLocal(ctx, path)
				if err != nil {
					return err
				}
				return outputJSON(out, rec)
			}

			w, err := watcher.New(cfg.Watch.Inbox, handler, log, 0)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(c.Context, "Drop recordings into %s. Press Ctrl+C to stop", cfg.Watch.Inbox)
			if err := w.Start(c.Context); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// runView is the JSON shape of a history row.
type runView struct {
	ID         string `json:"id"`
	ClassName  string `json:"class_name"`
	ClassDate  string `json:"class_date"`
	Theme      string `json:"class_theme"`
	FolderID   string `json:"folder_id,omitempty"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

func historyCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List previous runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Maximum runs to show (0 for all)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			db, err := history.Open(cfg.History.Dir)
			if err != nil {
				return err
			}
			store := history.NewStore(db)
			defer store.Close()

			runs, err := store.List(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}

			views := make([]runView, 0, len(runs))
			for _, r := range runs {
				v := runView{
					ID:        r.ID,
					ClassName: r.ClassName,
					ClassDate: r.ClassDate,
					Theme:     r.Theme,
					FolderID:  r.FolderID,
					Status:    r.Status,
					StartedAt: r.StartedAt.Format(time.RFC3339),
				}
				if !r.FinishedAt.IsZero() {
					v.FinishedAt = r.FinishedAt.Format(time.RFC3339)
				}
				views = append(views, v)
			}
			return outputJSON(out, views)
		},
	}
}

func outputJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
