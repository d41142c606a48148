// Package prompts derives smoke-test prompts from skill metadata.
// Generation is pure template expansion: the same document always
// yields the same prompts in the same order.
package prompts

import (
	"fmt"
	"strings"

	"github.com/ontos-ai/ontos/internal/skill"
)

// DefaultCount is the number of prompts generated when the caller does
// not ask for a specific count.
const DefaultCount = 5

// Generate expands the fixed templates against the document description
// and name, then truncates or pads deterministically to count. A count
// of zero or less means DefaultCount.
func Generate(doc *skill.Document, count int) []string {
	if count <= 0 {
		count = DefaultCount
	}

	subject := normalize(doc.Description)

	var prompts []string
	if subject != "" {
		prompts = append(prompts,
			fmt.Sprintf("Help me: %s", subject),
			fmt.Sprintf("I need to: %s", subject),
			subject,
			fmt.Sprintf("How do I %s?", subject),
		)
	}
	if name := doc.Name(); name != "" {
		prompts = append(prompts, fmt.Sprintf("Tell me about %s", name))
	}

	if len(prompts) == 0 {
		return nil
	}
	if len(prompts) >= count {
		return prompts[:count]
	}
	// Pad by cycling through the expanded templates again.
	for i := 0; len(prompts) < count; i++ {
		prompts = append(prompts, prompts[i%len(prompts)])
	}
	return prompts
}

// normalize strips trailing sentence punctuation so templates compose
// cleanly.
func normalize(description string) string {
	return strings.TrimRight(strings.TrimSpace(description), ".!?")
}
