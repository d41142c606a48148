package models

// VerdictKind is the categorical outcome of judging one test prompt.
type VerdictKind string

const (
	VerdictYes     VerdictKind = "YES"
	VerdictPartial VerdictKind = "PARTIAL"
	VerdictNo      VerdictKind = "NO"
	VerdictError   VerdictKind = "ERROR"
	VerdictUnknown VerdictKind = "UNKNOWN"
)

// JudgeMethod identifies which judge produced a verdict.
type JudgeMethod string

const (
	MethodRule JudgeMethod = "rule"
	MethodLLM  JudgeMethod = "llm"
)

// Verdict is the judgment for a single prompt/response pair.
type Verdict struct {
	Kind       VerdictKind `json:"verdict"`
	Confidence float64     `json:"confidence"`
	Method     JudgeMethod `json:"method"`
	// Annotation carries traceability detail: the rule result a hybrid
	// escalation started from, or the error that degraded the verdict.
	Annotation string `json:"annotation,omitempty"`
}
