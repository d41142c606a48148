package scoring

// maxRecommendations caps how many suggestions a single report carries.
const maxRecommendations = 5

// recommendationRules maps issue codes to remediation advice, in
// priority order. Each rule fires at most once, so the resulting list
// is deduplicated and order-stable by construction.
var recommendationRules = []struct {
	codes []string
	text  string
}{
	{[]string{CodeMissingName, CodeMissingDesc},
		"Add required 'name' and 'description' fields to the metadata header"},
	{[]string{CodeManyPlaceholders, CodePlaceholdersFound},
		"Replace placeholder text with real examples"},
	{[]string{CodeBrokenScriptRef, CodeScriptsDirMissing},
		"Fix script references so every referenced path exists"},
	{[]string{CodeNoUsageContext},
		"Add a 'Use when...' clause to the description for better triggering"},
	{[]string{CodeShortDescription},
		"Expand the description to at least 50 characters"},
	{[]string{CodeNoSteps},
		"Add numbered procedural steps for better actionability"},
	{[]string{CodeVagueLanguage},
		"Replace vague language with specific guidance"},
	{[]string{CodeExtraField},
		"Remove non-standard metadata fields or move them into the body"},
	{[]string{CodeNoExampleSection},
		"Add a dedicated Examples section"},
}

func recommendations(issues []Issue) []string {
	present := make(map[string]bool, len(issues))
	for _, issue := range issues {
		present[issue.Code] = true
	}

	var recs []string
	for _, rule := range recommendationRules {
		if len(recs) == maxRecommendations {
			break
		}
		for _, code := range rule.codes {
			if present[code] {
				recs = append(recs, rule.text)
				break
			}
		}
	}
	return recs
}
