// Package judge decides whether a model response actually used a skill.
// A cheap rule-based judge handles the clear cases; a model-based judge
// resolves the ambiguous ones under the hybrid policy.
package judge

import (
	"strings"

	"github.com/ontos-ai/ontos/internal/models"
	"github.com/ontos-ai/ontos/internal/skill"
)

// Keyword extraction limits. Only the first five content words of the
// description are sampled; preserved as specified behavior.
const (
	maxDescriptionKeywords = 5
	minNamePartLen         = 4 // name parts must be longer than 3
	minContentWordLen      = 4
)

// actionPhrases signal the response is doing the task rather than
// talking about it.
var actionPhrases = []string{
	"i'll", "i will", "let me", "here's", "here is", "first,", "step",
}

// RuleJudge scores responses with lexical heuristics. It is free and
// deterministic, so it always runs first.
type RuleJudge struct{}

// Judge computes a verdict from keyword overlap between the skill
// metadata and the response.
func (RuleJudge) Judge(doc *skill.Document, response string) models.Verdict {
	keywords := extractKeywords(doc)
	respLower := strings.ToLower(response)

	matched := 0
	for _, kw := range keywords {
		if strings.Contains(respLower, kw) {
			matched++
		}
	}
	matchRatio := 0.0
	if len(keywords) > 0 {
		matchRatio = float64(matched) / float64(len(keywords))
	}

	confidence := 0.0
	if name := strings.ToLower(doc.Name()); name != "" && strings.Contains(respLower, name) {
		confidence += 0.4
	}
	if matchRatio > 0.3 {
		confidence += 0.3
	}
	if containsAny(respLower, actionPhrases) {
		confidence += 0.2
	}
	if len(response) > 100 {
		confidence += 0.1
	}
	if confidence > 1 {
		confidence = 1
	}

	kind := models.VerdictNo
	switch {
	case confidence >= 0.5:
		kind = models.VerdictYes
	case confidence >= 0.3:
		kind = models.VerdictPartial
	}

	return models.Verdict{Kind: kind, Confidence: confidence, Method: models.MethodRule}
}

// extractKeywords samples candidate keywords from the skill name parts
// and the leading content words of the description.
func extractKeywords(doc *skill.Document) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}

	for _, part := range strings.FieldsFunc(strings.ToLower(doc.Name()), isSeparator) {
		if len(part) >= minNamePartLen {
			add(part)
		}
	}

	content := 0
	for _, word := range strings.Fields(strings.ToLower(doc.Description)) {
		word = strings.Trim(word, `.,!?:;"'()`)
		if len(word) < minContentWordLen {
			continue
		}
		add(word)
		content++
		if content == maxDescriptionKeywords {
			break
		}
	}
	return keywords
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == ' ' || r == '.'
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
