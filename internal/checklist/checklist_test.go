package checklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

const sampleDoc = `# Project Features

This document tracks the implementation status of planned features.

- [ ] Bootstrap: Create the repository

## Core
- [x] Auth: Login flow
- [ ] Search: Full text search over notes
- [ ] BrokenLine
Some prose that is not a feature.

## Extras
- [ ] Export: CSV export: with headers
- [x] Export: Duplicate names stay distinct
`

// tuple strips identity and timestamps so parsed features can be compared.
type tuple struct {
	Name        string
	Description string
	Completed   bool
	Category    string
}

func tuples(features []types.Feature) []tuple {
	out := make([]tuple, 0, len(features))
	for _, f := range features {
		out = append(out, tuple{f.Name, f.Description, f.Completed, f.Category})
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []tuple
	}{
		{
			name: "completed feature under category",
			doc:  "## Core\n- [x] Auth: Login flow\n",
			want: []tuple{{"Auth", "Login flow", true, "Core"}},
		},
		{
			name: "line without colon is dropped",
			doc:  "- [ ] BrokenLine",
			want: []tuple{},
		},
		{
			name: "features before any header use the default category",
			doc:  "- [ ] Setup: Install tools",
			want: []tuple{{"Setup", "Install tools", false, DefaultCategory}},
		},
		{
			name: "description keeps text after the first colon",
			doc:  "## API\n- [ ] Rate limit: 100 req/min: per token",
			want: []tuple{{"Rate limit", "100 req/min: per token", false, "API"}},
		},
		{
			name: "category label is trimmed",
			doc:  "##   Spaced Out   \n- [ ] A: b",
			want: []tuple{{"A", "b", false, "Spaced Out"}},
		},
		{
			name: "upper-case X is not a checkbox",
			doc:  "- [X] Upper: ignored",
			want: []tuple{},
		},
		{
			name: "empty document",
			doc:  "",
			want: []tuple{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tuples(Parse(tt.doc)))
		})
	}
}

func TestParse_SampleDocument(t *testing.T) {
	got := tuples(Parse(sampleDoc))
	assert.Equal(t, []tuple{
		{"Bootstrap", "Create the repository", false, DefaultCategory},
		{"Auth", "Login flow", true, "Core"},
		{"Search", "Full text search over notes", false, "Core"},
		{"Export", "CSV export: with headers", false, "Extras"},
		{"Export", "Duplicate names stay distinct", true, "Extras"},
	}, got)
}

func TestSerialize(t *testing.T) {
	features := []types.Feature{
		{Name: "Auth", Description: "Login flow", Completed: true, Category: "Core"},
		{Name: "Export", Description: "CSV", Category: "Extras"},
		{Name: "Search", Description: "Full text", Category: "Core"},
	}

	want := strings.Join([]string{
		Title,
		"",
		Intro,
		"",
		"## Core",
		"- [x] Auth: Login flow",
		"- [ ] Search: Full text",
		"",
		"## Extras",
		"- [ ] Export: CSV",
		"",
	}, "\n")
	assert.Equal(t, want, Serialize(features))
}

func TestSerialize_Empty(t *testing.T) {
	doc := Serialize(nil)
	assert.Equal(t, Title+"\n\n"+Intro+"\n", doc)
	assert.NotContains(t, doc, "## ")
}

func TestRoundTrip_Idempotent(t *testing.T) {
	docs := []string{
		sampleDoc,
		"## A\n- [x] one: 1\n## B\n- [ ] two: 2\n## A\n- [ ] three: 3\n",
		"- [ ] lonely: default category only",
		"",
	}

	for _, doc := range docs {
		once := Parse(doc)
		again := Parse(Serialize(once))
		assert.ElementsMatch(t, tuples(once), tuples(again))
	}
}

func TestRoundTrip_ToggleKeepsOthers(t *testing.T) {
	features := Parse(sampleDoc)
	features[2].Completed = !features[2].Completed

	regenerated := Parse(Serialize(features))
	require.Len(t, regenerated, len(features))

	for i := range features {
		assert.Equal(t, features[i].Name, regenerated[i].Name)
		assert.Equal(t, features[i].Description, regenerated[i].Description)
		assert.Equal(t, features[i].Category, regenerated[i].Category)
		assert.Equal(t, features[i].Completed, regenerated[i].Completed)
	}
}

func TestGroupByCategory(t *testing.T) {
	features := []types.Feature{
		{Name: "a", Category: "Z"},
		{Name: "b", Category: "A"},
		{Name: "c", Category: "Z"},
	}

	groups := GroupByCategory(features)
	require.Len(t, groups, 2)
	assert.Equal(t, "Z", groups[0].Category)
	assert.Equal(t, "A", groups[1].Category)
	require.Len(t, groups[0].Features, 2)
	assert.Equal(t, "a", groups[0].Features[0].Name)
	assert.Equal(t, "c", groups[0].Features[1].Name)
}

func TestParseFile(t *testing.T) {
	t.Run("missing file parses to empty", func(t *testing.T) {
		got, err := ParseFile(filepath.Join(t.TempDir(), "features.md"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reads features from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "features.md")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

		got, err := ParseFile(path)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})
}
