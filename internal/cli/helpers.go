package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/editor"
	"github.com/mesh-intelligence/vibedocs/internal/prompt"
	"github.com/mesh-intelligence/vibedocs/internal/sqlite"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// attachBackend opens the store named by cfg. The caller must defer
// backend.Detach(). When mustExist is set, a missing database file means no
// project was ever initialized.
func (a *app) attachBackend(cfg types.Config, mustExist bool) (*sqlite.Backend, error) {
	if mustExist && !sqlite.Exists(cfg.DBPath) {
		return nil, fmt.Errorf("%w (%w: %s)", types.ErrNoProject, types.ErrStoreMissing, cfg.DBPath)
	}
	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	a.logger.Debug("store attached", "path", backend.Path())
	return backend, nil
}

// templateStore returns the configured template source: a directory when
// templates_dir is set, the built-in templates otherwise.
func templateStore(cfg types.Config) *templates.Store {
	if cfg.TemplatesDir != "" {
		return templates.NewStore(os.DirFS(cfg.TemplatesDir))
	}
	return templates.Embedded()
}

// display is where interactive output goes. In JSON mode it moves to stderr
// so stdout carries only the JSON document.
func (a *app) display() io.Writer {
	if a.jsonMode {
		return a.errOut
	}
	return a.out
}

func (a *app) newPrompter() prompt.Prompter {
	if a.prompter != nil {
		return a.prompter
	}
	return prompt.NewTerminal(a.in, a.display())
}

func (a *app) newEditor(backend *sqlite.Backend, cfg types.Config) *editor.Editor {
	return editor.New(backend, templateStore(cfg), a.newPrompter(), console.New(a.display()), a.logger)
}

// activeProject returns the named project, or the most recently updated one
// when name is empty.
func activeProject(backend *sqlite.Backend, name string) (*types.Project, error) {
	if name != "" {
		p, err := backend.GetProjectByName(name)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", name, err)
		}
		return p, nil
	}
	p, err := backend.MostRecentProject()
	if err != nil {
		if isNotFound(err) {
			return nil, types.ErrNoProject
		}
		return nil, err
	}
	return p, nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// isNotFound returns true if the error wraps ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
