package judge

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ontos-ai/ontos/internal/models"
	"github.com/ontos-ai/ontos/internal/provider"
	"github.com/ontos-ai/ontos/internal/skill"
)

// responseExcerptLimit truncates the response shown to the judge model.
const responseExcerptLimit = 500

const judgeSystemPrompt = "You are a strict evaluator. " +
	"Answer with exactly one word: YES, PARTIAL, or NO."

// ModelJudge asks an external model whether the response used the skill.
type ModelJudge struct {
	Provider provider.Provider
}

// Judge builds the fixed-shape evaluation prompt and parses the
// single-word answer. A provider failure degrades to UNKNOWN with the
// reason attached; it never propagates as an error.
func (j *ModelJudge) Judge(ctx context.Context, doc *skill.Document, prompt, response string) models.Verdict {
	out, err := j.Provider.Chat(ctx, judgeSystemPrompt, buildJudgePrompt(doc, prompt, response))
	if err != nil {
		return models.Verdict{
			Kind:       models.VerdictUnknown,
			Confidence: 0,
			Method:     models.MethodLLM,
			Annotation: fmt.Sprintf("judge call failed: %v", err),
		}
	}

	switch word := firstWord(out); word {
	case "YES":
		return models.Verdict{Kind: models.VerdictYes, Confidence: 0.9, Method: models.MethodLLM}
	case "PARTIAL":
		return models.Verdict{Kind: models.VerdictPartial, Confidence: 0.6, Method: models.MethodLLM}
	case "NO":
		return models.Verdict{Kind: models.VerdictNo, Confidence: 0.9, Method: models.MethodLLM}
	default:
		return models.Verdict{
			Kind:       models.VerdictNo,
			Confidence: 0.3,
			Method:     models.MethodLLM,
			Annotation: fmt.Sprintf("unrecognized judge answer %q", word),
		}
	}
}

func buildJudgePrompt(doc *skill.Document, prompt, response string) string {
	excerpt := response
	if utf8.RuneCountInString(excerpt) > responseExcerptLimit {
		excerpt = string([]rune(excerpt)[:responseExcerptLimit])
	}
	return fmt.Sprintf(`Evaluate whether the assistant response used the skill described below.

Skill name: %s
Skill description: %s

User prompt: %s

Assistant response (excerpt):
%s

Did the response make use of the skill? Answer with exactly one word: YES, PARTIAL, or NO.`,
		doc.Name(), doc.Description, prompt, excerpt)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.Trim(fields[0], `.,!:"'`))
}
