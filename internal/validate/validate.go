// Package validate checks a project's documentation files against what the
// store recorded for them.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/mesh-intelligence/vibedocs/internal/checklist"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// Kind classifies an Issue.
type Kind string

const (
	KindMissingFile     Kind = "missing_file"
	KindDrift           Kind = "drift"
	KindPlaceholder     Kind = "placeholder"
	KindNoTitle         Kind = "no_title"
	KindFeatureMismatch Kind = "feature_mismatch"
)

// Issue is one problem found in a section.
type Issue struct {
	Section string `json:"section"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Report is the result of validating one project.
type Report struct {
	Project  string  `json:"project"`
	Sections int     `json:"sections"`
	Issues   []Issue `json:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Store is the subset of the persistence layer validation reads from.
type Store interface {
	GetSections(projectID int64, name string) ([]*types.Section, error)
	ListFeatures(projectID int64) ([]types.Feature, error)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Project validates every section of project.
func Project(store Store, project *types.Project) (*Report, error) {
	sections, err := store.GetSections(project.ID, "")
	if err != nil {
		return nil, err
	}
	report := &Report{Project: project.Name, Sections: len(sections), Issues: []Issue{}}

	for _, sec := range sections {
		add := func(kind Kind, format string, args ...any) {
			report.Issues = append(report.Issues, Issue{
				Section: sec.Name,
				Kind:    kind,
				Message: fmt.Sprintf(format, args...),
			})
		}

		path := filepath.Join(project.Path, filepath.FromSlash(sec.FilePath))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				add(KindMissingFile, "%s does not exist", sec.FilePath)
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc := string(data)

		if doc != sec.Content {
			add(KindDrift, "%s differs from the stored content", sec.FilePath)
		}
		if keys := templates.Placeholders(doc); len(keys) > 0 {
			add(KindPlaceholder, "unfilled placeholders: %s", strings.Join(keys, ", "))
		}
		if !HasTitle(data) {
			add(KindNoTitle, "%s has no level-1 heading", sec.FilePath)
		}

		if sec.Name == types.FeaturesSection {
			stored, err := store.ListFeatures(project.ID)
			if err != nil {
				return nil, err
			}
			for _, msg := range compareFeatures(checklist.Parse(doc), stored) {
				add(KindFeatureMismatch, "%s", msg)
			}
		}
	}
	return report, nil
}

// HasTitle reports whether a markdown document contains a level-1 heading.
func HasTitle(source []byte) bool {
	doc := markdown.Parser().Parse(text.NewReader(source))
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// compareFeatures matches checklist entries against stored features as
// multisets and describes each entry present on only one side.
func compareFeatures(parsed, stored []types.Feature) []string {
	key := func(f types.Feature) string {
		return f.Category + "\x00" + checklist.Line(f)
	}

	counts := make(map[string]int)
	for _, f := range stored {
		counts[key(f)]++
	}

	var msgs []string
	for _, f := range parsed {
		k := key(f)
		if counts[k] > 0 {
			counts[k]--
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%q (%s) is in features.md but not in the store", f.Name, f.Category))
	}
	for _, f := range stored {
		k := key(f)
		if counts[k] > 0 {
			counts[k]--
			msgs = append(msgs, fmt.Sprintf("%q (%s) is in the store but not in features.md", f.Name, f.Category))
		}
	}
	return msgs
}
