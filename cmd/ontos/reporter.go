package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ontos-ai/ontos/internal/models"
	"github.com/ontos-ai/ontos/internal/scoring"
)

var badgeIcons = map[scoring.Badge]string{
	scoring.BadgeGold:   "🥇",
	scoring.BadgeSilver: "🥈",
	scoring.BadgeBronze: "🥉",
	scoring.BadgeFail:   "❌",
}

var severityIcons = map[scoring.Severity]string{
	scoring.SeverityError:   "🔴",
	scoring.SeverityWarning: "🟡",
	scoring.SeverityInfo:    "🔵",
}

func renderEvalReports(reports []*scoring.Report, format string) (string, error) {
	switch format {
	case "json":
		if len(reports) == 1 {
			return marshalJSON(reports[0])
		}
		return marshalJSON(reports)
	case "markdown":
		parts := make([]string, len(reports))
		for i, r := range reports {
			parts[i] = evalMarkdown(r)
		}
		return strings.Join(parts, "\n---\n\n"), nil
	case "text":
		parts := make([]string, len(reports))
		for i, r := range reports {
			parts[i] = evalText(r)
		}
		return strings.Join(parts, "\n"), nil
	default:
		return "", fmt.Errorf("unknown format %q: must be text, json, or markdown", format)
	}
}

func evalText(r *scoring.Report) string {
	var b strings.Builder
	status := "FAIL"
	if r.IsPassed {
		status = "PASS"
	}
	fmt.Fprintf(&b, "%s %s: %.2f (%s, threshold %.2f)\n",
		badgeIcons[r.Badge], r.SkillID, r.Scores.Overall, status, r.PassThreshold)
	fmt.Fprintf(&b, "  structure %.2f | triggers %.2f | actionability %.2f | tool refs %.2f | examples %.2f\n",
		r.Scores.Structure, r.Scores.Triggers, r.Scores.Actionability, r.Scores.ToolRefs, r.Scores.Examples)
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "  %s %s: %s\n", severityIcons[issue.Severity], issue.Code, issue.Message)
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  → %s\n", rec)
	}
	return b.String()
}

func evalMarkdown(r *scoring.Report) string {
	lines := []string{
		fmt.Sprintf("# Skill Evaluation Report: %s", r.SkillID),
		"",
		fmt.Sprintf("**Badge**: %s %s", badgeIcons[r.Badge], strings.ToUpper(string(r.Badge))),
		fmt.Sprintf("**Overall Score**: %.2f", r.Scores.Overall),
		fmt.Sprintf("**Evaluated**: %s", r.EvaluatedAt.Format("2006-01-02 15:04:05 UTC")),
		"",
		"## Scores",
		"",
		"| Dimension | Score | Weight |",
		"|-----------|-------|--------|",
		fmt.Sprintf("| Structure | %.2f | 20%% |", r.Scores.Structure),
		fmt.Sprintf("| Triggers | %.2f | 15%% |", r.Scores.Triggers),
		fmt.Sprintf("| Actionability | %.2f | 25%% |", r.Scores.Actionability),
		fmt.Sprintf("| Tool References | %.2f | 20%% |", r.Scores.ToolRefs),
		fmt.Sprintf("| Examples | %.2f | 20%% |", r.Scores.Examples),
		"",
	}

	if len(r.Issues) > 0 {
		lines = append(lines, "## Issues", "")
		for _, issue := range r.Issues {
			lineInfo := ""
			if issue.Line > 0 {
				lineInfo = fmt.Sprintf(" (line %d)", issue.Line)
			}
			lines = append(lines, fmt.Sprintf("- %s **%s**%s: %s",
				severityIcons[issue.Severity], issue.Code, lineInfo, issue.Message))
			if issue.Suggestion != "" {
				lines = append(lines, fmt.Sprintf("  - 💡 %s", issue.Suggestion))
			}
		}
		lines = append(lines, "")
	}

	if len(r.Recommendations) > 0 {
		lines = append(lines, "## Recommendations", "")
		for i, rec := range r.Recommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func renderSmokeReport(r *models.SmokeTestReport, format string) (string, error) {
	switch format {
	case "json":
		return marshalJSON(r)
	case "markdown":
		return smokeMarkdown(r), nil
	case "text":
		return smokeText(r), nil
	default:
		return "", fmt.Errorf("unknown format %q: must be text, json, or markdown", format)
	}
}

func smokeMarkdown(r *models.SmokeTestReport) string {
	status := "❌ FAIL"
	if r.Passed {
		status = "✅ PASS"
	}
	lines := []string{
		fmt.Sprintf("# Smoke Test Report: %s", r.SkillID),
		"",
		fmt.Sprintf("**Result**: %s (%d/%d, success rate %.2f)", status, r.PassCount, r.TestCount, r.CallSuccessRate),
		fmt.Sprintf("**Provider**: %s | **Judge**: %s", r.Provider, r.JudgeMode),
		fmt.Sprintf("**Tested**: %s", r.TestedAt.Format("2006-01-02 15:04:05 UTC")),
		"",
		"| # | Prompt | Verdict | Confidence | Method | Latency |",
		"|---|--------|---------|------------|--------|---------|",
	}
	for i, entry := range r.Tests {
		lines = append(lines, fmt.Sprintf("| %d | %s | %s | %.2f | %s | %dms |",
			i+1, entry.Prompt, entry.Kind, entry.Confidence, entry.Method, entry.LatencyMs))
	}
	lines = append(lines, "", r.Summary, "")
	return strings.Join(lines, "\n")
}

func smokeText(r *models.SmokeTestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Smoke test: %s (provider %s, judge %s)\n", r.SkillID, r.Provider, r.JudgeMode)
	for i, entry := range r.Tests {
		fmt.Fprintf(&b, "  %d. [%s] %s (%dms", i+1, entry.Kind, entry.Prompt, entry.LatencyMs)
		if entry.Method != "" {
			fmt.Fprintf(&b, ", %s judge", entry.Method)
		}
		b.WriteString(")\n")
		if entry.Annotation != "" {
			fmt.Fprintf(&b, "     %s\n", entry.Annotation)
		}
	}
	fmt.Fprintf(&b, "%s\n", r.Summary)
	return b.String()
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(data), nil
}
