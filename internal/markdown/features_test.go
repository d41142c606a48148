package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_Headings(t *testing.T) {
	f := Extract("# Title\n\n## Examples\n\nText.\n\n### Output Format\n")
	require.Equal(t, []string{"title", "examples", "output format"}, f.Headings)
	require.True(t, f.HasHeadingPrefix("example"))
	require.True(t, f.HasHeadingPrefix("output"))
	require.False(t, f.HasHeadingPrefix("trigger"))
}

func TestExtract_Fences(t *testing.T) {
	body := "Run it:\n\n```bash\nls -la\n```\n\n```json\n{\"a\": 1}\n```\n\n```\nplain\n```\n"
	f := Extract(body)
	require.Equal(t, []string{"bash", "json", ""}, f.FenceLangs)
	require.True(t, f.HasFence())
	require.True(t, f.HasFenceLang("bash", "sh"))
	require.True(t, f.HasFenceLang("json"))
	require.False(t, f.HasFenceLang("python"))
}

func TestExtract_Lists(t *testing.T) {
	f := Extract("1. First step\n2. Second step\n")
	require.True(t, f.HasList)
	require.True(t, f.HasOrdered)

	f = Extract("- a bullet\n- another bullet\n")
	require.True(t, f.HasList)
	require.False(t, f.HasOrdered)

	f = Extract("Just a paragraph.\n")
	require.False(t, f.HasList)
}

func TestExtract_Table(t *testing.T) {
	f := Extract("| col | val |\n|-----|-----|\n| a | 1 |\n")
	require.True(t, f.HasTable)

	f = Extract("No table here.\n")
	require.False(t, f.HasTable)
}

func TestExtract_Links(t *testing.T) {
	f := Extract("See [the guide](references/guide.md) and <https://example.com>.\n")
	require.Contains(t, f.LinkTargets, "references/guide.md")
	require.Contains(t, f.LinkTargets, "https://example.com")
}

func TestExtract_Empty(t *testing.T) {
	f := Extract("")
	require.Empty(t, f.Headings)
	require.False(t, f.HasFence())
	require.False(t, f.HasList)
	require.False(t, f.HasTable)
}
