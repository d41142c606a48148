package scoring

// Severity classifies how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes emitted by the dimension checkers.
const (
	CodeMissingName       = "MISSING_NAME"
	CodeMissingDesc       = "MISSING_DESCRIPTION"
	CodeExtraField        = "EXTRA_FIELD"
	CodeNoResources       = "NO_RESOURCES"
	CodeNoUsageContext    = "NO_USAGE_CONTEXT"
	CodeShortDescription  = "SHORT_DESCRIPTION"
	CodeNoTriggerExamples = "NO_TRIGGER_EXAMPLES"
	CodeNoSteps           = "NO_STEPS"
	CodeNoCodeBlocks      = "NO_CODE_BLOCKS"
	CodeVagueLanguage     = "VAGUE_LANGUAGE"
	CodeFewImperatives    = "FEW_IMPERATIVES"
	CodeBrokenScriptRef   = "BROKEN_SCRIPT_REF"
	CodeScriptsDirMissing = "SCRIPTS_DIR_MISSING"
	CodeNoToolRefs        = "NO_TOOL_REFS"
	CodePlaceholdersFound = "PLACEHOLDERS_FOUND"
	CodeManyPlaceholders  = "MANY_PLACEHOLDERS"
	CodeNoExampleSection  = "NO_EXAMPLE_SECTION"
	CodeNoOutputFormat    = "NO_OUTPUT_FORMAT"
	CodeCheckerFailure    = "CHECKER_FAILURE"
)

// Issue is a single finding from a checker. Issues are never mutated
// after creation.
type Issue struct {
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Line       int      `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}
