package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/desknote/internal"
	pkgconfig "github.com/starford/desknote/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found {
		slog.Debug("config file not found, using defaults", slog.String("path", configPath))
	}
	return cfg, nil
}

// openApp builds the application for one-shot commands, logging to logOutput.
func openApp(cmd *cli.Command, logOutput io.Writer) (*internal.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	app, err := internal.New(
		internal.WithConfig(cfg),
		internal.WithLogOutput(logOutput),
		internal.WithVersion(version),
	)
	if err != nil {
		return nil, fmt.Errorf("app init error: %w", err)
	}
	return app, nil
}

func main() {
	cmd := &cli.Command{
		Name:    "desknote",
		Usage:   "Render short notes onto the desktop wallpaper and keep a history of them",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("DESKNOTE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			setCommand(),
			logCommand(),
			historyCommand(),
			searchCommand(),
			serveCommand(),
			mcpCommand(),
			commandsCommand(),
		},
	}

	// Interrupts cancel a running render.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
