package models

import "time"

// SmokeTestEntry records one prompt execution and its judgment.
type SmokeTestEntry struct {
	Prompt          string `json:"prompt"`
	ResponsePreview string `json:"response_preview"`
	Verdict
	LatencyMs int64 `json:"latency_ms"`
}

// SmokeTestReport is the complete result of one orchestrator run. It is
// owned by that run and never shared or mutated afterwards.
type SmokeTestReport struct {
	SkillID         string           `json:"skill_id"`
	SkillPath       string           `json:"skill_path,omitempty"`
	TestedAt        time.Time        `json:"tested_at"`
	Provider        string           `json:"provider"`
	JudgeMode       string           `json:"judge_mode"`
	TestCount       int              `json:"test_count"`
	PassCount       int              `json:"pass_count"`
	CallSuccessRate float64          `json:"call_success_rate"`
	Passed          bool             `json:"passed"`
	Tests           []SmokeTestEntry `json:"tests"`
	Summary         string           `json:"summary"`
}
