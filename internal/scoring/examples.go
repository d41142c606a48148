package scoring

import (
	"fmt"
	"regexp"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// placeholderRes match authoring leftovers that signal an incomplete
// skill: bracketed TODO-style tokens, FIXME markers, template angle
// brackets, and bare ellipses.
var placeholderRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[placeholder\]`),
	regexp.MustCompile(`(?i)\[todo\]`),
	regexp.MustCompile(`(?i)\[tbd\]`),
	regexp.MustCompile(`(?i)\[fill in\]`),
	regexp.MustCompile(`(?i)\bxxx\b`),
	regexp.MustCompile(`\bFIXME\b`),
	regexp.MustCompile(`\bTODO\b`),
	regexp.MustCompile(`(?i)<your[^>\n]*>`),
	regexp.MustCompile(`\.\.\.`),
}

func checkExamples(doc *skill.Document, f markdown.Features) (float64, []Issue) {
	score := 0.0
	var issues []Issue
	body := doc.Body

	placeholderCount := 0
	for _, re := range placeholderRes {
		placeholderCount += len(re.FindAllStringIndex(body, -1))
	}
	switch {
	case placeholderCount == 0:
		score += 0.4
	case placeholderCount <= 2:
		score += 0.2
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodePlaceholdersFound,
			Message:    fmt.Sprintf("found %d placeholder(s)", placeholderCount),
			Suggestion: "Replace placeholders with real examples",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeManyPlaceholders,
			Message:  fmt.Sprintf("found %d placeholders - skill may be incomplete", placeholderCount),
		})
	}

	if f.HasHeadingPrefix("example", "sample", "demo") {
		score += 0.3
	} else {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Code:     CodeNoExampleSection,
			Message:  "no dedicated Examples section found",
		})
	}

	if f.HasTable || f.HasFenceLang("json", "yaml") || f.HasHeadingPrefix("output") {
		score += 0.3
	} else {
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeNoOutputFormat,
			Message:    "no clear output format specification",
			Suggestion: "Add example output to show expected results",
		})
	}

	if score > 1 {
		score = 1
	}
	return score, issues
}
