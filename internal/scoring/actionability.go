package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// vaguePhrases are filler expressions that dilute instructions.
var vaguePhrases = []string{
	"as needed",
	"if necessary",
	"when appropriate",
	"as applicable",
	"etc.",
	"and so on",
	"various",
}

// imperativeVerbs is the fixed vocabulary of action verbs good
// instructions lean on.
var imperativeVerbs = []string{
	"run", "execute", "create", "add", "remove", "update", "check", "verify", "use",
}

var (
	numberedStepRe = regexp.MustCompile(`(?m)^\s*\d+\.\s`)
	verbRes        = compileVerbPatterns(imperativeVerbs)
)

func compileVerbPatterns(verbs []string) map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(verbs))
	for _, v := range verbs {
		res[v] = regexp.MustCompile(`(?i)\b` + v + `\b`)
	}
	return res
}

func checkActionability(doc *skill.Document, f markdown.Features) (float64, []Issue) {
	score := 0.0
	var issues []Issue
	body := doc.Body

	if f.HasList || numberedStepRe.MatchString(body) || f.HasHeadingPrefix("step") {
		score += 0.35
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeNoSteps,
			Message:    "no numbered or bulleted procedural steps found",
			Suggestion: "Add step-by-step instructions",
		})
	}

	if f.HasFence() {
		score += 0.25
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeNoCodeBlocks,
			Message:    "no code blocks found",
			Suggestion: "Add code examples for concrete guidance",
		})
	}

	lower := strings.ToLower(body)
	vagueCount := 0
	for _, phrase := range vaguePhrases {
		if strings.Contains(lower, phrase) {
			vagueCount++
		}
	}
	if vagueCount > 3 {
		// 0.1 per phrase beyond three, capped at 0.3.
		penalty := 0.1 * float64(min(vagueCount-3, 3))
		score -= penalty
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeVagueLanguage,
			Message:    fmt.Sprintf("found %d vague phrases that reduce clarity", vagueCount),
			Suggestion: "Replace vague language with specific guidance",
		})
	} else {
		score += 0.2
	}

	verbCount := 0
	for _, v := range imperativeVerbs {
		if verbRes[v].MatchString(body) {
			verbCount++
		}
	}
	switch {
	case verbCount >= 3:
		score += 0.2
	case verbCount == 0:
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeFewImperatives,
			Message:    "few imperative verbs found (run, create, check, ...)",
			Suggestion: "Use more action-oriented language",
		})
	}

	return clamp01(score), issues
}
