package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkSkill(t *testing.T, root string, parts ...string) {
	t.Helper()
	dir := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("---\nname: x\n---\n"), 0o644))
}

func TestDiscover_FindsNestedSkills(t *testing.T) {
	root := t.TempDir()
	mkSkill(t, root, "alpha")
	mkSkill(t, root, "group", "beta")
	mkSkill(t, root, "group", "gamma")

	skills, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, skills, 3)

	names := []string{skills[0].Name, skills[1].Name, skills[2].Name}
	require.Equal(t, []string{"alpha", "beta", "gamma"}, names)
	for _, s := range skills {
		require.True(t, filepath.IsAbs(s.SkillPath))
		require.Equal(t, s.Dir, filepath.Dir(s.SkillPath))
	}
}

func TestDiscover_SkipsHiddenAndDependencyDirs(t *testing.T) {
	root := t.TempDir()
	mkSkill(t, root, "visible")
	mkSkill(t, root, ".hidden", "secret")
	mkSkill(t, root, "node_modules", "pkg")
	mkSkill(t, root, "vendor", "dep")

	skills, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, "visible", skills[0].Name)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDiscover_EmptyTree(t *testing.T) {
	skills, err := Discover(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, skills)
}

func TestDiscover_SortedForStableBatches(t *testing.T) {
	root := t.TempDir()
	mkSkill(t, root, "zeta")
	mkSkill(t, root, "alpha")
	mkSkill(t, root, "mid")

	first, err := Discover(root)
	require.NoError(t, err)
	second, err := Discover(root)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "alpha", first[0].Name)
	require.Equal(t, "zeta", first[2].Name)
}
