package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ontos-ai/ontos/internal/config"
	"github.com/ontos-ai/ontos/internal/discovery"
	"github.com/ontos-ai/ontos/internal/scoring"
	"github.com/ontos-ai/ontos/internal/skill"
)

func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [skill-path]",
		Short: "Score a skill document against the quality heuristics",
		Long: `Score a SKILL.md across five weighted dimensions and report issues
and recommendations. No network access is needed.

The argument is a skill directory (containing SKILL.md), the SKILL.md
file itself, or with --batch a tree to search for skills:

  ontos eval skills/my-skill
  ontos eval skills/my-skill/SKILL.md
  ontos eval --batch skills/`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runEval,
		SilenceErrors: true,
	}
	cmd.Flags().String("format", "text", "Output format: text | json | markdown")
	cmd.Flags().Float64("threshold", 0, "Pass threshold override (0 < t <= 1)")
	cmd.Flags().Bool("batch", false, "Evaluate every skill found under the given directory")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	format, _ := cmd.Flags().GetString("format")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	batch, _ := cmd.Flags().GetBool("batch")

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if threshold == 0 {
		threshold = cfg.Settings.PassThreshold
	}
	if threshold <= 0 || threshold > 1 {
		return &config.Error{Detail: fmt.Sprintf("pass threshold %v out of range (0, 1]", threshold)}
	}
	engine := scoring.Engine{PassThreshold: threshold}

	dirs, err := evalTargets(target, batch)
	if err != nil {
		return err
	}

	var reports []*scoring.Report
	for _, dir := range dirs {
		doc, err := skill.Load(dir)
		if err != nil {
			if batch {
				slog.Warn("skipping unparseable skill", "dir", dir, "error", err)
				continue
			}
			return err
		}
		reports = append(reports, engine.Evaluate(doc))
	}
	if len(reports) == 0 {
		return fmt.Errorf("no evaluable skills under %s", target)
	}

	out, err := renderEvalReports(reports, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	failed := 0
	for _, r := range reports {
		if !r.IsPassed {
			failed++
		}
	}
	if failed > 0 {
		return &TestFailureError{
			Message: fmt.Sprintf("%d of %d skills scored below the pass threshold %.2f",
				failed, len(reports), threshold),
		}
	}
	return nil
}

// evalTargets resolves the positional argument into skill directories.
func evalTargets(target string, batch bool) ([]string, error) {
	if batch {
		found, err := discovery.Discover(target)
		if err != nil {
			return nil, err
		}
		dirs := make([]string, len(found))
		for i, s := range found {
			dirs[i] = s.Dir
		}
		return dirs, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("skill path: %w", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Base(target), "SKILL.md") {
			return nil, fmt.Errorf("%s is not a skill directory or SKILL.md file", target)
		}
		return []string{filepath.Dir(target)}, nil
	}
	return []string{target}, nil
}
