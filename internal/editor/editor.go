// Package editor implements the interactive vibe flows: initializing a
// project from a template, and the update session that edits sections and the
// feature checklist while keeping files and the store in sync.
package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/prompt"
	"github.com/mesh-intelligence/vibedocs/internal/sqlite"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
)

// Editor bundles the collaborators every flow needs. All fields are required.
type Editor struct {
	Store     *sqlite.Backend
	Templates *templates.Store
	Prompt    prompt.Prompter
	Console   *console.Console
	Logger    *log.Logger
}

// New creates an Editor.
func New(store *sqlite.Backend, tmpl *templates.Store, p prompt.Prompter, c *console.Console, logger *log.Logger) *Editor {
	return &Editor{Store: store, Templates: tmpl, Prompt: p, Console: c, Logger: logger}
}

// newSessionID generates a UUID v7 used to correlate a flow's log lines.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// writeFile replaces path with content using the temp-file, fsync, rename
// pattern so a section file is never left half-written.
func writeFile(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vibe-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %s: %w", path, step, err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		return fail("writing", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("setting mode", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: closing: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: renaming: %w", path, err)
	}
	return nil
}
