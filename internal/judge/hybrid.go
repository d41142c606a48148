package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/ontos-ai/ontos/internal/models"
	"github.com/ontos-ai/ontos/internal/skill"
)

// Mode selects the judgment policy.
type Mode string

const (
	ModeRule   Mode = "rule"
	ModeLLM    Mode = "llm"
	ModeHybrid Mode = "hybrid"
)

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rule":
		return ModeRule, nil
	case "llm":
		return ModeLLM, nil
	case "hybrid", "":
		return ModeHybrid, nil
	default:
		return ModeHybrid, fmt.Errorf("invalid judge mode %q: must be rule, llm, or hybrid", s)
	}
}

// escalationThreshold is the rule confidence below which hybrid mode
// pays for a model call.
const escalationThreshold = 0.7

// Judge applies the configured policy. The rule verdict is always
// computed first; the model judge runs only when the mode demands it.
type Judge struct {
	Mode Mode
	Rule RuleJudge
	// Model may be nil when no provider is available; hybrid then
	// degrades to the rule result.
	Model *ModelJudge
}

// Judge returns the verdict for one prompt/response pair.
func (j *Judge) Judge(ctx context.Context, doc *skill.Document, prompt, response string) models.Verdict {
	rule := j.Rule.Judge(doc, response)

	switch j.Mode {
	case ModeRule:
		return rule

	case ModeLLM:
		if j.Model == nil {
			return models.Verdict{
				Kind:       models.VerdictUnknown,
				Method:     models.MethodLLM,
				Annotation: "model judge unavailable: no provider configured",
			}
		}
		return j.Model.Judge(ctx, doc, prompt, response)

	default: // hybrid
		if rule.Kind != models.VerdictPartial && rule.Confidence >= escalationThreshold {
			return rule
		}
		if j.Model == nil {
			rule.Annotation = "model judge unavailable: no provider configured"
			return rule
		}
		escalated := j.Model.Judge(ctx, doc, prompt, response)
		if escalated.Kind == models.VerdictUnknown {
			// Model call failed: keep the rule result, annotated with
			// the failure so the degradation is visible.
			rule.Annotation = escalated.Annotation
			return rule
		}
		escalated.Annotation = joinAnnotations(
			fmt.Sprintf("rule: %s (%.2f)", rule.Kind, rule.Confidence),
			escalated.Annotation,
		)
		return escalated
	}
}

func joinAnnotations(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "; ")
}
