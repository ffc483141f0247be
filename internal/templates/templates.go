// Package templates provides the named documentation templates used to seed
// new projects, and the {{placeholder}} substitution applied to their files.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

//go:embed data
var embedded embed.FS

// Project layout written by every template.
const (
	DocsDir         = "docs"
	InstructionsDir = "instructions"
	ManifestFile    = "template.yaml"
)

// docFiles lists the top-level documents copied after the instructions, in order.
var docFiles = []string{
	"features.md",
	"project_coding_docs.md",
	"implementation_plan.md",
	"cursorrules.md",
	"windsurfrules.md",
}

// templatePaths maps template names to their directory inside the store root.
var templatePaths = map[string]string{
	"default": "default",
	"api":     "api",
}

// ProjectNameKey is filled from the project name rather than prompted for.
const ProjectNameKey = "project_name"

// Prompt asks the user for one placeholder value.
type Prompt struct {
	Key      string `yaml:"key"`
	Question string `yaml:"question"`
}

// Manifest is the template.yaml found in each template directory.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Prompts     []Prompt `yaml:"prompts"`
}

// File is one template source file and where it lands in a project.
type File struct {
	Source  string // Path inside the store filesystem.
	RelPath string // Destination relative to the project root.
}

// Name returns the section name for the file: its filename stem.
func (f File) Name() string {
	base := path.Base(f.RelPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Template is a resolved, read-only template.
type Template struct {
	Name     string
	Manifest Manifest
	Files    []File
}

// Rendered is a template file after placeholder substitution.
type Rendered struct {
	Name    string
	RelPath string
	Content string
}

// Store reads templates from a filesystem whose root holds one directory per
// template name.
type Store struct {
	fsys fs.FS
}

// NewStore creates a Store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Embedded returns the Store backed by the templates compiled into the binary.
func Embedded() *Store {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("templates: embedded data missing: %v", err))
	}
	return NewStore(sub)
}

// Names returns the known template names, sorted.
func Names() []string {
	names := make([]string, 0, len(templatePaths))
	for name := range templatePaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a known template.
func Known(name string) bool {
	_, ok := templatePaths[name]
	return ok
}

// Get resolves a template by name. Unknown names return an error wrapping
// types.ErrUnknownTemplate that lists the available names.
func (s *Store) Get(name string) (*Template, error) {
	dir, ok := templatePaths[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available templates: %s)",
			types.ErrUnknownTemplate, name, strings.Join(Names(), ", "))
	}

	manifest, err := s.readManifest(dir)
	if err != nil {
		return nil, err
	}
	if manifest.Name == "" {
		manifest.Name = name
	}

	files, err := s.files(dir)
	if err != nil {
		return nil, err
	}

	return &Template{Name: name, Manifest: manifest, Files: files}, nil
}

// readManifest loads template.yaml. A missing manifest yields no prompts.
func (s *Store) readManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := fs.ReadFile(s.fsys, path.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("read manifest %s: %w", dir, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", dir, err)
	}
	return m, nil
}

// files lists the template's files: instructions/*.md first, then the fixed
// document list. Documents absent from the template are skipped.
func (s *Store) files(dir string) ([]File, error) {
	var files []File

	matches, err := fs.Glob(s.fsys, path.Join(dir, InstructionsDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("list instructions %s: %w", dir, err)
	}
	for _, m := range matches {
		files = append(files, File{
			Source:  m,
			RelPath: path.Join(DocsDir, InstructionsDir, path.Base(m)),
		})
	}

	for _, name := range docFiles {
		src := path.Join(dir, name)
		if _, err := fs.Stat(s.fsys, src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", src, err)
		}
		files = append(files, File{Source: src, RelPath: path.Join(DocsDir, name)})
	}
	return files, nil
}

// Render reads every file of t and substitutes values into it.
func (s *Store) Render(t *Template, values map[string]string) ([]Rendered, error) {
	out := make([]Rendered, 0, len(t.Files))
	for _, f := range t.Files {
		data, err := fs.ReadFile(s.fsys, f.Source)
		if err != nil {
			return nil, fmt.Errorf("read template file %s: %w", f.Source, err)
		}
		out = append(out, Rendered{
			Name:    f.Name(),
			RelPath: f.RelPath,
			Content: Substitute(string(data), values),
		})
	}
	return out, nil
}

// Substitute replaces each {{key}} in content with values[key]. Placeholders
// with no supplied value are left verbatim. Keys are applied in sorted order.
func Substitute(content string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		content = strings.ReplaceAll(content, "{{"+key+"}}", values[key])
	}
	return content
}

// Placeholders returns the distinct {{key}} tokens left in content, in
// order of first appearance.
func Placeholders(content string) []string {
	var keys []string
	seen := make(map[string]bool)
	for {
		start := strings.Index(content, "{{")
		if start < 0 {
			return keys
		}
		content = content[start+2:]
		end := strings.Index(content, "}}")
		if end < 0 {
			return keys
		}
		key := strings.TrimSpace(content[:end])
		content = content[end+2:]
		if key == "" || strings.ContainsAny(key, "{}\n") || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
}
