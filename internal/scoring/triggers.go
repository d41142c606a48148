package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// usageKeywords signal that a description says when to invoke the skill.
var usageKeywords = []string{
	"use when",
	"use for",
	"use this skill",
	"triggers",
	"invoke",
	"activate",
	"call this",
}

var (
	emphasizedTriggerRe = regexp.MustCompile(`(?i)\*[^*\n]*trigger[^*\n]*\*`)
	quotedPhraseRe      = regexp.MustCompile(`"[^"\n]+"`)
)

func checkTriggers(doc *skill.Document, f markdown.Features) (float64, []Issue) {
	score := 0.0
	var issues []Issue

	desc := strings.ToLower(doc.Description)
	if containsAny(desc, usageKeywords) {
		score += 0.4
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeNoUsageContext,
			Message:    "description lacks clear usage context (e.g. 'Use when...')",
			Suggestion: "Add a 'Use when...' clause to the description",
		})
	}

	descLen := utf8.RuneCountInString(doc.Description)
	if descLen >= 50 {
		score += 0.2
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeShortDescription,
			Message:    fmt.Sprintf("description is only %d chars, may be too vague", descLen),
			Suggestion: "Expand the description to at least 50 characters",
		})
	}

	if hasTriggerEvidence(doc.Body, f) {
		score += 0.4
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeNoTriggerExamples,
			Message:    "no explicit trigger phrase examples found in body",
			Suggestion: `Add example trigger phrases like '"analyze this data"'`,
		})
	}

	if score > 1 {
		score = 1
	}
	return score, issues
}

// hasTriggerEvidence looks for a labeled trigger/usage section, an
// emphasized trigger mention, or a quoted phrase.
func hasTriggerEvidence(body string, f markdown.Features) bool {
	if f.HasHeadingPrefix("trigger", "usage", "invoke", "activate", "when to use") {
		return true
	}
	if emphasizedTriggerRe.MatchString(body) {
		return true
	}
	return quotedPhraseRe.MatchString(body)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
