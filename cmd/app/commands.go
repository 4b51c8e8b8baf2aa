package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/starford/desknote/internal"
	"github.com/starford/desknote/internal/markup"
)

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Render a note and set it as the wallpaper (reads stdin when no text is given)",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Process commands and formatting only; render, set and log nothing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text, err := noteText(cmd.Args().Slice(), os.Stdin)
			if err != nil {
				return err
			}

			app, err := openApp(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()

			if cmd.Bool("dry-run") {
				preview, err := app.Service().Prepare(text)
				if err != nil {
					return err
				}
				printPreview(color.Output, preview)
				return nil
			}

			out, err := app.Service().Submit(ctx, text)
			if err != nil {
				return err
			}
			printOutcome(color.Output, out)
			return nil
		},
	}
}

// noteText joins args into the note, or reads it from r when args is empty.
func noteText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func logCommand() *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Print the raw note log",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()

			printLog(color.Output, app.Service().ReadLog(ctx))
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List logged notes, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Number of notes to show (0 for all)"},
			&cli.IntFlag{Name: "offset", Usage: "Number of notes to skip"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()

			entries, total, err := app.Service().ListNotes(ctx, int(cmd.Int("limit")), int(cmd.Int("offset")))
			if err != nil {
				return err
			}
			printEntries(color.Output, entries, total)
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search through logged notes",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of results"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if query == "" {
				return fmt.Errorf("search: query is required")
			}

			app, err := openApp(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Sync(); err != nil {
				return fmt.Errorf("search: sync index: %w", err)
			}
			results, err := app.Service().Search(ctx, query, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			printResults(color.Output, results)
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API with live events",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// stdout carries the protocol.
			app, err := openApp(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.ServeMCP(ctx)
		},
	}
}

func commandsCommand() *cli.Command {
	return &cli.Command{
		Name:  "commands",
		Usage: "List the slash commands understood in note text",
		Action: func(_ context.Context, _ *cli.Command) error {
			printCommands(color.Output, markup.Commands)
			return nil
		},
	}
}
