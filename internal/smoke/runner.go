// Package smoke drives live skill invocation checks: it sends generated
// prompts to a provider one at a time, judges each response, and folds
// the verdicts into a single pass/fail report.
package smoke

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/ontos-ai/ontos/internal/judge"
	"github.com/ontos-ai/ontos/internal/models"
	"github.com/ontos-ai/ontos/internal/prompts"
	"github.com/ontos-ai/ontos/internal/provider"
	"github.com/ontos-ai/ontos/internal/skill"
)

const (
	// PassRateThreshold is the call success rate a run must reach to
	// pass. Chosen independently of the static evaluation threshold.
	PassRateThreshold = 0.6

	// responsePreviewLimit bounds the response excerpt kept per test.
	responsePreviewLimit = 200
)

// Runner executes smoke tests for one skill against one provider.
type Runner struct {
	Provider provider.Provider
	Judge    *judge.Judge
	// PromptCount overrides the default number of generated prompts
	// when positive.
	PromptCount int
	Logger      *slog.Logger
}

// Run generates prompts and executes them strictly in sequence. Each
// prompt gets one provider call and one judgment; a failed call becomes
// an ERROR verdict for that prompt and the run continues. The returned
// report is complete even when every call failed.
func (r *Runner) Run(ctx context.Context, doc *skill.Document) (*models.SmokeTestReport, error) {
	count := r.PromptCount
	if count <= 0 {
		count = prompts.DefaultCount
	}
	testPrompts := prompts.Generate(doc, count)
	if len(testPrompts) == 0 {
		return nil, fmt.Errorf("skill %q yields no test prompts", doc.ID)
	}

	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	report := &models.SmokeTestReport{
		SkillID:   doc.ID,
		SkillPath: doc.Dir,
		TestedAt:  time.Now().UTC(),
		Provider:  r.Provider.Name(),
		JudgeMode: string(r.Judge.Mode),
		TestCount: len(testPrompts),
		Tests:     make([]models.SmokeTestEntry, len(testPrompts)),
	}

	// One worker keeps prompts strictly ordered, bounds provider rate
	// consumption, and keeps latency measurements reproducible.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(1)
	for i, prompt := range testPrompts {
		group.Go(func() error {
			report.Tests[i] = r.runOne(groupCtx, log, doc, prompt)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, entry := range report.Tests {
		if entry.Kind == models.VerdictYes {
			report.PassCount++
		}
	}
	report.CallSuccessRate = round2(float64(report.PassCount) / float64(report.TestCount))
	report.Passed = report.CallSuccessRate >= PassRateThreshold
	report.Summary = summarize(report)

	log.Info("smoke test complete",
		"skill", doc.ID,
		"provider", report.Provider,
		"pass_count", report.PassCount,
		"test_count", report.TestCount,
		"passed", report.Passed)
	return report, nil
}

// runOne executes a single prompt. Provider failures are terminal for
// the prompt, never for the run.
func (r *Runner) runOne(ctx context.Context, log *slog.Logger, doc *skill.Document, prompt string) models.SmokeTestEntry {
	entry := models.SmokeTestEntry{Prompt: prompt}

	start := time.Now()
	response, err := r.Provider.Chat(ctx, systemPromptFor(doc), prompt)
	entry.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		log.Warn("provider call failed", "skill", doc.ID, "prompt", prompt, "error", err)
		entry.Verdict = models.Verdict{
			Kind:       models.VerdictError,
			Annotation: err.Error(),
		}
		return entry
	}

	entry.ResponsePreview = preview(response)
	entry.Verdict = r.Judge.Judge(ctx, doc, prompt, response)
	return entry
}

// systemPromptFor frames the call so the model knows the skill exists
// and may use it, without forcing it to.
func systemPromptFor(doc *skill.Document) string {
	return fmt.Sprintf("You have access to a skill named %q: %s\n"+
		"Use it when the user's request calls for it.\n\nSkill instructions:\n%s",
		doc.Name(), doc.Description, doc.Body)
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= responsePreviewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:responsePreviewLimit])
}

func summarize(r *models.SmokeTestReport) string {
	status := "FAIL"
	if r.Passed {
		status = "PASS"
	}
	return fmt.Sprintf("%s: %d/%d prompts invoked the skill (success rate %.2f, threshold %.2f)",
		status, r.PassCount, r.TestCount, r.CallSuccessRate, PassRateThreshold)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
