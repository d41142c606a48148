// Package scoring evaluates skill documents across five quality
// dimensions and aggregates them into a weighted report.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/ontos-ai/ontos/internal/markdown"
	"github.com/ontos-ai/ontos/internal/skill"
)

// Dimension weights. Together they sum to 1.0.
const (
	WeightStructure     = 0.20
	WeightTriggers      = 0.15
	WeightActionability = 0.25
	WeightToolRefs      = 0.20
	WeightExamples      = 0.20
)

// DefaultPassThreshold is the overall score a skill needs to pass.
const DefaultPassThreshold = 0.70

// Badge is the categorical quality tier derived from the overall score.
type Badge string

const (
	BadgeGold   Badge = "gold"
	BadgeSilver Badge = "silver"
	BadgeBronze Badge = "bronze"
	BadgeFail   Badge = "fail"
)

// ScoreSet holds the per-dimension scores plus the weighted overall,
// each rounded to two decimals.
type ScoreSet struct {
	Overall       float64 `json:"overall"`
	Structure     float64 `json:"structure"`
	Triggers      float64 `json:"triggers"`
	Actionability float64 `json:"actionability"`
	ToolRefs      float64 `json:"tool_refs"`
	Examples      float64 `json:"examples"`
}

// Report is the complete evaluation output. Built once, read-only
// thereafter.
type Report struct {
	SkillID         string    `json:"skill_id"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
	Tier            string    `json:"tier"`
	IsPassed        bool      `json:"is_passed"`
	PassThreshold   float64   `json:"pass_threshold"`
	Badge           Badge     `json:"badge"`
	Scores          ScoreSet  `json:"scores"`
	Issues          []Issue   `json:"issues"`
	Recommendations []string  `json:"recommendations"`
}

// Engine scores skill documents. The zero value uses defaults.
type Engine struct {
	// PassThreshold overrides DefaultPassThreshold when > 0.
	PassThreshold float64
}

// checkFunc is a pure dimension checker: document in, score in [0,1]
// and issues out. Checkers never write to shared state; the engine
// composes their results.
type checkFunc func(doc *skill.Document, f markdown.Features) (float64, []Issue)

// Evaluate runs all five dimension checkers and aggregates the result.
// Scoring is deterministic: the same document always yields the same
// scores, issues, and badge.
func (e Engine) Evaluate(doc *skill.Document) *Report {
	threshold := e.PassThreshold
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}

	features := markdown.Extract(doc.Body)

	var issues []Issue
	run := func(name string, fn checkFunc) float64 {
		score, found := safeCheck(name, fn, doc, features)
		issues = append(issues, found...)
		return score
	}

	structure := run("structure", checkStructure)
	triggers := run("triggers", checkTriggers)
	actionability := run("actionability", checkActionability)
	toolRefs := run("tool_refs", checkToolRefs)
	examples := run("examples", checkExamples)

	overall := structure*WeightStructure +
		triggers*WeightTriggers +
		actionability*WeightActionability +
		toolRefs*WeightToolRefs +
		examples*WeightExamples

	return &Report{
		SkillID:       doc.ID,
		EvaluatedAt:   time.Now().UTC(),
		Tier:          "quick",
		IsPassed:      overall >= threshold,
		PassThreshold: threshold,
		Badge:         badgeFor(overall),
		Scores: ScoreSet{
			Overall:       round2(overall),
			Structure:     round2(structure),
			Triggers:      round2(triggers),
			Actionability: round2(actionability),
			ToolRefs:      round2(toolRefs),
			Examples:      round2(examples),
		},
		Issues:          issues,
		Recommendations: recommendations(issues),
	}
}

// safeCheck shields the run from checker panics: an internal failure
// becomes an error-severity issue instead of aborting the evaluation.
func safeCheck(name string, fn checkFunc, doc *skill.Document, f markdown.Features) (score float64, issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			score = 0
			issues = []Issue{{
				Severity: SeverityError,
				Code:     CodeCheckerFailure,
				Message:  fmt.Sprintf("%s checker failed: %v", name, r),
			}}
		}
	}()
	return fn(doc, f)
}

func badgeFor(overall float64) Badge {
	switch {
	case overall >= 0.85:
		return BadgeGold
	case overall >= 0.70:
		return BadgeSilver
	case overall >= 0.50:
		return BadgeBronze
	default:
		return BadgeFail
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
