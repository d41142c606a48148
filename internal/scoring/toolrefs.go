package scoring

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// toolKeywords indicate tool or API integration in the body.
var toolKeywords = []string{"mcp", "tool", "api", "endpoint", "function", "command"}

var (
	scriptRefRe = regexp.MustCompile(`scripts?/[\w\-.]+`)
	docRefRe    = regexp.MustCompile(`references?/[\w\-.]+`)
)

func checkToolRefs(doc *skill.Document, f markdown.Features) (float64, []Issue) {
	score := 0.0
	var issues []Issue
	body := doc.Body

	scriptRefs := dedupe(scriptRefRe.FindAllString(body, -1))

	// Disk checks need a skill directory; documents parsed from raw
	// text skip them entirely.
	if doc.Dir != "" {
		if dirHasEntries(filepath.Join(doc.Dir, "scripts")) {
			score += 0.3
			for _, ref := range scriptRefs {
				if _, err := os.Stat(filepath.Join(doc.Dir, ref)); err != nil {
					issues = append(issues, Issue{
						Severity:   SeverityError,
						Code:       CodeBrokenScriptRef,
						Message:    fmt.Sprintf("referenced script not found: %s", ref),
						Suggestion: fmt.Sprintf("Create %s or fix the reference", ref),
					})
				}
			}
		} else if len(scriptRefs) > 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeScriptsDirMissing,
				Message:  "script references found but scripts/ directory is missing or empty",
			})
		}
	}

	if docRefRe.MatchString(body) || hasMarkdownDocLink(f) {
		score += 0.3
	}

	lower := strings.ToLower(body)
	keywordCount := 0
	for _, kw := range toolKeywords {
		if strings.Contains(lower, kw) {
			keywordCount++
		}
	}
	if keywordCount >= 2 {
		score += 0.2
	}

	if f.HasFenceLang("bash", "shell", "sh", "zsh") {
		score += 0.2
	}

	// Absence of evidence is not failure: simple skills legitimately
	// have no tool integration, so score neutral instead of zero.
	if score == 0 {
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeNoToolRefs,
			Message:    "no tool, script, or API references found",
			Suggestion: "Consider adding bundled scripts or tool guidance",
		})
		score = 0.5
	}

	if score > 1 {
		score = 1
	}
	return score, issues
}

func hasMarkdownDocLink(f markdown.Features) bool {
	for _, target := range f.LinkTargets {
		if strings.HasSuffix(strings.ToLower(target), ".md") {
			return true
		}
	}
	return false
}

func dirHasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
