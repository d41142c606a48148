package scoring

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// allowedFields is the metadata whitelist. Anything else costs 0.05.
var allowedFields = map[string]bool{
	"name":        true,
	"description": true,
	"license":     true,
	"tags":        true,
}

// resourceDirs are the auxiliary directories a skill may bundle.
var resourceDirs = []string{"scripts", "references", "assets"}

func checkStructure(doc *skill.Document, _ markdown.Features) (float64, []Issue) {
	score := 1.0
	var issues []Issue

	if doc.Name() == "" {
		score -= 0.3
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeMissingName,
			Message:  "metadata is missing the required 'name' field",
		})
	}

	if doc.Description == "" {
		score -= 0.3
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeMissingDesc,
			Message:  "metadata is missing the required 'description' field",
		})
	}

	// Sort keys so repeated evaluations emit issues in the same order.
	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if allowedFields[k] {
			continue
		}
		score -= 0.05
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeExtraField,
			Message:    fmt.Sprintf("metadata contains non-standard field %q", k),
			Suggestion: fmt.Sprintf("Remove %q or move it into the body", k),
		})
	}

	if !hasResourceEvidence(doc) {
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeNoResources,
			Message:    "no scripts/, references/, or assets/ directories found or referenced",
			Suggestion: "Consider bundling resources if the skill needs them",
		})
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}

// hasResourceEvidence reports whether a resource directory is present on
// disk or at least referenced in the body. Documents parsed from raw
// text have no directory, so only the reference check applies.
func hasResourceEvidence(doc *skill.Document) bool {
	if doc.Dir != "" {
		for _, d := range resourceDirs {
			if info, err := os.Stat(filepath.Join(doc.Dir, d)); err == nil && info.IsDir() {
				return true
			}
		}
	}
	for _, d := range resourceDirs {
		if strings.Contains(doc.Body, d+"/") {
			return true
		}
	}
	return false
}
