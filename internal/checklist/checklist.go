// Package checklist converts between the features.md markdown checklist and
// Feature records.
//
// The line format is fixed:
//
//	## <category>
//	- [ ] <name>: <description>
//	- [x] <name>: <description>
//
// Parse and Serialize are inverses on that format: Serialize(Parse(doc))
// reproduces the same category grouping and checkbox lines, though blank-line
// spacing may differ.
package checklist

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// DefaultCategory labels features that appear before any category header.
const DefaultCategory = "Core Features"

// Document header written by Serialize.
const (
	Title = "# Project Features"
	Intro = "This document tracks the implementation status of planned features."
)

const (
	categoryPrefix = "## "
	openPrefix     = "- [ ] "
	donePrefix     = "- [x] "
)

// Group is one category and its features in document order.
type Group struct {
	Category string
	Features []types.Feature
}

// Parse scans a checklist document and returns its features in encounter
// order. Feature lines without a ':' separator are dropped. Duplicate names
// are kept as separate records.
func Parse(doc string) []types.Feature {
	var features []types.Feature
	category := DefaultCategory

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, categoryPrefix):
			category = strings.TrimSpace(line[len(categoryPrefix):])
		case strings.HasPrefix(line, openPrefix), strings.HasPrefix(line, donePrefix):
			completed := strings.HasPrefix(line, donePrefix)
			name, description, ok := strings.Cut(line[len(openPrefix):], ":")
			if !ok {
				continue
			}
			features = append(features, types.Feature{
				Name:        strings.TrimSpace(name),
				Description: strings.TrimSpace(description),
				Completed:   completed,
				Category:    category,
			})
		}
	}
	return features
}

// ParseFile reads and parses the checklist at path. A missing file yields an
// empty feature list, not an error.
func ParseFile(path string) ([]types.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}

// GroupByCategory buckets features by category. Categories appear in the
// order they are first seen; features keep their relative order.
func GroupByCategory(features []types.Feature) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, f := range features {
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, Group{Category: f.Category})
		}
		groups[i].Features = append(groups[i].Features, f)
	}
	return groups
}

// Serialize renders features as a checklist document. Categories with no
// features are never emitted.
func Serialize(features []types.Feature) string {
	lines := []string{Title, "", Intro, ""}

	for _, g := range GroupByCategory(features) {
		lines = append(lines, categoryPrefix+g.Category)
		for _, f := range g.Features {
			lines = append(lines, Line(f))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Line renders a single feature as a checkbox line.
func Line(f types.Feature) string {
	prefix := openPrefix
	if f.Completed {
		prefix = donePrefix
	}
	return prefix + f.Name + ": " + f.Description
}
