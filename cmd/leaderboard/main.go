package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/team-leaderboard/app"
	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/render"
	"github.com/Black-And-White-Club/team-leaderboard/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := newCLIApp(os.Stdout)
	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLIApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:  "leaderboard",
		Usage: "team leaderboard for a series of lichess arena tournaments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "scoring variant: detailed or overall",
			},
		},
		Commands: []*cli.Command{
			newBuildCommand(stdout),
			newServeCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if v := c.String("variant"); v != "" {
		cfg.Leaderboard.Variant = v
	}
	return cfg, nil
}

func newBuildCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "compute the leaderboard once and write it out",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "HTML output path (stdout when empty)"},
			&cli.StringFlag{Name: "xlsx", Usage: "also write an Excel workbook to this path"},
			&cli.StringFlag{Name: "chart", Usage: "also write a PNG bar chart to this path"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			application, err := app.NewApp(c.Context, cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			res, err := application.Build(c.Context)
			if err != nil {
				return err
			}

			var page bytes.Buffer
			if err := render.WriteHTML(&page, cfg.Leaderboard.Title, res.GeneratedAt, res.Variant, res.RoundLabels, res.Standings); err != nil {
				return fmt.Errorf("failed to render HTML: %w", err)
			}
			if out := c.String("out"); out != "" {
				if err := os.WriteFile(out, page.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
			} else if _, err := page.WriteTo(stdout); err != nil {
				return err
			}

			if path := c.String("xlsx"); path != "" {
				if err := writeFile(path, func(w io.Writer) error {
					return render.WriteXLSX(w, res.Variant, res.RoundLabels, res.Standings)
				}); err != nil {
					return err
				}
			}
			if path := c.String("chart"); path != "" {
				if err := writeFile(path, func(w io.Writer) error {
					return render.WriteChart(w, cfg.Leaderboard.Title, res.Standings, render.DefaultPalette)
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the leaderboard over HTTP, recomputed per request",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Serve(ctx)
		},
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
