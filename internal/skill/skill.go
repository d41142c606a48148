// Package skill parses SKILL.md documents into validated skill documents.
package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Delimiter is the fixed line that opens and closes a metadata block.
const Delimiter = "---"

// MinDescriptionLength is the minimum accepted description length in runes.
const MinDescriptionLength = 10

// FailureCode identifies why a document could not be parsed.
type FailureCode string

const (
	NoHeader           FailureCode = "NO_HEADER"
	MalformedHeader    FailureCode = "MALFORMED_HEADER"
	MissingDescription FailureCode = "MISSING_DESCRIPTION"
)

// ParseError is a typed, document-fatal parse failure.
type ParseError struct {
	Code    FailureCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Document is an immutable skill document produced by Parse.
type Document struct {
	// ID identifies the skill: the metadata name when parsed from raw
	// text, or the containing directory name when loaded from disk.
	ID          string
	Description string
	Body        string
	Metadata    map[string]string

	// Dir is the skill directory when loaded from disk. Empty for
	// documents parsed from raw text; checkers that look at bundled
	// resources skip disk access in that case.
	Dir string
}

// Name returns the metadata name field, which may be empty.
func (d *Document) Name() string {
	return d.Metadata["name"]
}

// Parse turns raw SKILL.md text into a Document. A document must open
// with a delimiter line starting a metadata block, closed by the same
// delimiter. Authors sometimes duplicate the whole metadata block; all
// leading blocks are scanned and the one with the longest description
// becomes canonical, with the body taken after the last block.
func Parse(raw string) (*Document, error) {
	lines := strings.Split(raw, "\n")

	if strings.TrimSpace(lines[0]) != Delimiter {
		return nil, &ParseError{
			Code:    NoHeader,
			Message: "document must start with a metadata block (---)",
		}
	}

	if countDelimiters(lines) < 2 {
		return nil, &ParseError{
			Code:    MalformedHeader,
			Message: "metadata block is missing its closing --- delimiter",
		}
	}

	blocks, bodyStart := collectBlocks(lines)
	if len(blocks) == 0 {
		return nil, &ParseError{
			Code:    MalformedHeader,
			Message: "metadata block is missing its closing --- delimiter",
		}
	}

	metadata := canonicalBlock(blocks)
	desc := metadata["description"]
	if utf8.RuneCountInString(desc) < MinDescriptionLength {
		return nil, &ParseError{
			Code: MissingDescription,
			Message: fmt.Sprintf("description is %d chars (need %d+)",
				utf8.RuneCountInString(desc), MinDescriptionLength),
		}
	}

	return &Document{
		ID:          metadata["name"],
		Description: desc,
		Body:        strings.TrimSpace(strings.Join(lines[bodyStart:], "\n")),
		Metadata:    metadata,
	}, nil
}

// Load reads SKILL.md from a skill directory. The directory name becomes
// the document ID so resource checks can resolve relative references.
func Load(dir string) (*Document, error) {
	path := filepath.Join(dir, "SKILL.md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := Parse(string(data))
	if err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	doc.Dir = absDir
	doc.ID = filepath.Base(absDir)
	return doc, nil
}

func countDelimiters(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == Delimiter {
			n++
		}
	}
	return n
}

// collectBlocks gathers every leading delimiter-fenced block and returns
// the parsed field maps plus the index of the first body line.
func collectBlocks(lines []string) ([]map[string]string, int) {
	var blocks []map[string]string
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == Delimiter {
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == Delimiter {
				end = j
				break
			}
		}
		if end < 0 {
			// Dangling opener: treat it as body content.
			break
		}
		blocks = append(blocks, parseFields(lines[i+1:end]))
		i = end + 1
	}
	return blocks, i
}

// parseFields captures key: value lines from a metadata block. List items
// (leading hyphen) belong to multi-valued fields and are skipped rather
// than mis-captured as scalars. Surrounding quotes are stripped.
func parseFields(lines []string) map[string]string {
	fields := make(map[string]string)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = unquote(strings.TrimSpace(value))
	}
	return fields
}

// canonicalBlock selects the block with the longest description,
// regardless of block order. Ties keep the earliest block so recovery
// stays deterministic.
func canonicalBlock(blocks []map[string]string) map[string]string {
	best := blocks[0]
	for _, b := range blocks[1:] {
		if utf8.RuneCountInString(b["description"]) > utf8.RuneCountInString(best["description"]) {
			best = b
		}
	}
	return best
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
