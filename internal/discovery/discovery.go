// Package discovery finds skill directories for batch evaluation.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoveredSkill is a skill directory found during traversal.
type DiscoveredSkill struct {
	Name      string // directory name containing SKILL.md
	SkillPath string // absolute path to SKILL.md
	Dir       string // absolute path to the skill directory
}

// Discover walks the given root and returns every directory containing
// a SKILL.md, sorted by path for stable batch ordering. Hidden
// directories and dependency trees are skipped.
func Discover(root string) ([]DiscoveredSkill, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	// Verify root exists before walking
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	var skills []DiscoveredSkill

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		if d.IsDir() && path != absRoot && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if d.IsDir() && (d.Name() == "node_modules" || d.Name() == "vendor") {
			return fs.SkipDir
		}

		if !d.IsDir() && d.Name() == "SKILL.md" {
			dir := filepath.Dir(path)
			skills = append(skills, DiscoveredSkill{
				Name:      filepath.Base(dir),
				SkillPath: path,
				Dir:       dir,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", absRoot, err)
	}

	sort.Slice(skills, func(i, j int) bool {
		return skills[i].SkillPath < skills[j].SkillPath
	})
	return skills, nil
}
