package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ontos",
		Short: "Ontos - CLI tool for evaluating skill documents",
		Long: `Ontos evaluates the quality of skill documents.

It scores a SKILL.md across five weighted dimensions (structure,
triggers, actionability, tool references, examples) and can smoke-test
a skill against a live model provider to verify it can actually be
prompted into use.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if *debugLogging {
			level = slog.LevelDebug
		}
		handler := tint.NewHandler(os.Stderr, &tint.Options{
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
			TimeFormat: time.Kitchen,
			Level:      level,
		})
		slog.SetDefault(slog.New(handler))
	}

	cmd.AddCommand(newEvalCommand())
	cmd.AddCommand(newSmokeCommand())
	cmd.AddCommand(newProvidersCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
