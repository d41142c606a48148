package skill

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireParseFailure(t *testing.T, raw string, code FailureCode) {
	t.Helper()
	doc, err := Parse(raw)
	require.Nil(t, doc)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
	require.Equal(t, code, perr.Code)
}

func TestParse_NoHeader(t *testing.T) {
	requireParseFailure(t, "# Just a heading\n\nSome body text.\n", NoHeader)
	requireParseFailure(t, "", NoHeader)
}

func TestParse_MalformedHeader(t *testing.T) {
	requireParseFailure(t, "---\nname: my-skill\ndescription: never closed\n", MalformedHeader)
}

func TestParse_ShortDescription(t *testing.T) {
	requireParseFailure(t, "---\nname: my-skill\ndescription: tiny\n---\nBody.\n", MissingDescription)
	requireParseFailure(t, "---\nname: my-skill\n---\nBody.\n", MissingDescription)
}

func TestParse_DescriptionBoundary(t *testing.T) {
	// Exactly 10 runes is accepted, 9 is not.
	doc, err := Parse("---\nname: my-skill\ndescription: 1234567890\n---\nBody.\n")
	require.NoError(t, err)
	require.Equal(t, "1234567890", doc.Description)

	requireParseFailure(t, "---\nname: my-skill\ndescription: 123456789\n---\nBody.\n", MissingDescription)
}

func TestParse_Basic(t *testing.T) {
	doc, err := Parse(`---
name: csv-wrangler
description: "Use when you need to reshape CSV files"
license: MIT
---

# CSV Wrangler

Reshape CSV files.
`)
	require.NoError(t, err)
	require.Equal(t, "csv-wrangler", doc.ID)
	require.Equal(t, "csv-wrangler", doc.Name())
	require.Equal(t, "Use when you need to reshape CSV files", doc.Description)
	require.Equal(t, "MIT", doc.Metadata["license"])
	require.True(t, strings.HasPrefix(doc.Body, "# CSV Wrangler"))
	require.Empty(t, doc.Dir)
}

func TestParse_QuoteStripping(t *testing.T) {
	doc, err := Parse("---\nname: 'quoted-skill'\ndescription: 'single quoted description'\n---\nBody.\n")
	require.NoError(t, err)
	require.Equal(t, "quoted-skill", doc.ID)
	require.Equal(t, "single quoted description", doc.Description)
}

func TestParse_ListItemsSkipped(t *testing.T) {
	doc, err := Parse(`---
name: tagged-skill
description: a skill with tags
tags:
  - data
  - csv:parsing
---
Body.
`)
	require.NoError(t, err)
	require.Equal(t, "", doc.Metadata["- data"])
	require.NotContains(t, doc.Metadata, "- csv")
	// The tags key itself is captured as an empty scalar.
	require.Contains(t, doc.Metadata, "tags")
	require.Equal(t, "", doc.Metadata["tags"])
}

func TestParse_DuplicateBlocks_LongestDescriptionWins(t *testing.T) {
	short := "short desc here"
	long := "a much longer description that should win block selection"

	// Longer description in the second block.
	doc, err := Parse("---\nname: first\ndescription: " + short + "\n---\n---\nname: second\ndescription: " + long + "\n---\nBody text.\n")
	require.NoError(t, err)
	require.Equal(t, long, doc.Description)
	require.Equal(t, "second", doc.ID)
	require.Equal(t, "Body text.", doc.Body)

	// Longer description in the first block: same winner regardless of order.
	doc, err = Parse("---\nname: first\ndescription: " + long + "\n---\n---\nname: second\ndescription: " + short + "\n---\nBody text.\n")
	require.NoError(t, err)
	require.Equal(t, long, doc.Description)
	require.Equal(t, "first", doc.ID)
	require.Equal(t, "Body text.", doc.Body)
}

func TestParse_BodyAfterLastBlock(t *testing.T) {
	doc, err := Parse("---\ndescription: the first description block\n---\n---\ndescription: second block desc\n---\nOnly this is body.\n")
	require.NoError(t, err)
	require.Equal(t, "Only this is body.", doc.Body)
}

func TestParse_CommentLinesIgnored(t *testing.T) {
	doc, err := Parse("---\n# authoring note\nname: commented\ndescription: description long enough\n---\nBody.\n")
	require.NoError(t, err)
	require.NotContains(t, doc.Metadata, "# authoring note")
	require.Equal(t, "commented", doc.ID)
}

func TestParse_Deterministic(t *testing.T) {
	raw := "---\nname: stable\ndescription: deterministic parsing check\n---\nBody line.\n"
	a, err := Parse(raw)
	require.NoError(t, err)
	b, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "disk-skill")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "---\nname: other-name\ndescription: loaded from disk for the test\n---\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))

	doc, err := Load(dir)
	require.NoError(t, err)
	// Directory name wins over the frontmatter name for the ID.
	require.Equal(t, "disk-skill", doc.ID)
	require.Equal(t, "other-name", doc.Name())
	require.NotEmpty(t, doc.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	var perr *ParseError
	require.False(t, errors.As(err, &perr))
}
