// Package markdown extracts structural features from skill bodies.
// The dimension checkers share one goldmark parse per document instead
// of re-scanning the text with ad hoc patterns.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Features summarizes the markdown structure of a document body.
type Features struct {
	// Headings holds heading text, lowercased and trimmed, in order.
	Headings []string
	// FenceLangs holds the info string of each fenced code block,
	// lowercased. Fences without an info string contribute "".
	FenceLangs []string
	// LinkTargets holds link and autolink destinations in order.
	LinkTargets []string
	HasList     bool
	HasOrdered  bool
	HasTable    bool
}

var parser = goldmark.New(goldmark.WithExtensions(extension.Table))

// Extract parses body once and collects the features the checkers need.
func Extract(body string) Features {
	src := []byte(body)
	root := parser.Parser().Parse(text.NewReader(src))

	var f Features
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			f.Headings = append(f.Headings, strings.ToLower(strings.TrimSpace(nodeText(node, src))))
		case *ast.FencedCodeBlock:
			f.FenceLangs = append(f.FenceLangs, strings.ToLower(string(node.Language(src))))
		case *ast.List:
			f.HasList = true
			if node.IsOrdered() {
				f.HasOrdered = true
			}
		case *ast.Link:
			f.LinkTargets = append(f.LinkTargets, string(node.Destination))
		case *ast.AutoLink:
			f.LinkTargets = append(f.LinkTargets, string(node.URL(src)))
		default:
			if n.Kind() == extast.KindTable {
				f.HasTable = true
			}
		}
		return ast.WalkContinue, nil
	})
	return f
}

// HasFence reports whether any fenced code block exists.
func (f Features) HasFence() bool {
	return len(f.FenceLangs) > 0
}

// HasFenceLang reports whether a fence carries one of the given info
// strings.
func (f Features) HasFenceLang(langs ...string) bool {
	for _, lang := range f.FenceLangs {
		for _, want := range langs {
			if lang == want {
				return true
			}
		}
	}
	return false
}

// HasHeadingPrefix reports whether any heading starts with one of the
// given lowercase prefixes.
func (f Features) HasHeadingPrefix(prefixes ...string) bool {
	for _, h := range f.Headings {
		for _, p := range prefixes {
			if strings.HasPrefix(h, p) {
				return true
			}
		}
	}
	return false
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
