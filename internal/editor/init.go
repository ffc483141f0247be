package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/vibedocs/internal/checklist"
	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/sqlite"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// InitOptions selects what Init creates.
type InitOptions struct {
	Name        string // Project name; also the directory name.
	Template    string
	ProjectsDir string // Parent directory of the new project.
}

// Validate checks the options before anything is created.
func (o InitOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Name, validation.Required, validation.By(plainDirName)),
		validation.Field(&o.Template, validation.Required),
		validation.Field(&o.ProjectsDir, validation.Required),
	)
}

// plainDirName rejects names that would escape ProjectsDir.
func plainDirName(value any) error {
	name, _ := value.(string)
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.New("must be a plain directory name")
	}
	return nil
}

// InitResult describes a newly created project.
type InitResult struct {
	Project  *types.Project   `json:"project"`
	Sections []*types.Section `json:"sections"`
	Features []types.Feature  `json:"features"`
}

// Init creates a project directory from a template, records the project, one
// section per template file, and the features parsed from the generated
// checklist. Nothing is left behind on failure: the store writes share one
// transaction and the directory is removed if any step fails.
func (e *Editor) Init(opts InitOptions) (*InitResult, error) {
	session := newSessionID()
	logger := e.Logger.With("session", session, "project", opts.Name)

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidName, err)
	}

	tmpl, err := e.Templates.Get(opts.Template)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Join(opts.ProjectsDir, opts.Name))
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}
	if _, err := os.Lstat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrProjectExists, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if _, err := e.Store.GetProjectByName(opts.Name); err == nil {
		return nil, fmt.Errorf("%w: project %q is already tracked", types.ErrProjectExists, opts.Name)
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	values, err := e.promptValues(tmpl, opts.Name)
	if err != nil {
		return nil, err
	}
	rendered, err := e.Templates.Render(tmpl, values)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.ProjectsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create projects directory: %w", err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	var result *InitResult
	err = e.Store.WithTx(func(tx *sqlite.Backend) error {
		var err error
		result, err = e.scaffold(tx, dir, opts, rendered)
		return err
	})
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.Error("cleanup after failed init", "dir", dir, "err", rmErr)
		}
		return nil, err
	}

	logger.Info("initialized project", "template", tmpl.Name, "sections", len(result.Sections), "features", len(result.Features))
	e.Console.Panel("Vibe Docs",
		fmt.Sprintf("✅ Project '%s' initialized successfully with the '%s' template", opts.Name, tmpl.Name),
		console.ToneSuccess)
	return result, nil
}

// scaffold writes the rendered files under dir and records everything in tx.
func (e *Editor) scaffold(tx *sqlite.Backend, dir string, opts InitOptions, rendered []templates.Rendered) (*InitResult, error) {
	project, err := tx.CreateProject(opts.Name, dir, opts.Template)
	if err != nil {
		return nil, err
	}
	result := &InitResult{Project: project}

	if err := os.MkdirAll(filepath.Join(dir, templates.DocsDir, templates.InstructionsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create docs directory: %w", err)
	}

	for _, r := range rendered {
		path := filepath.Join(dir, filepath.FromSlash(r.RelPath))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := writeFile(path, r.Content); err != nil {
			return nil, err
		}
		section, err := tx.CreateSection(project.ID, r.Name, r.RelPath, r.Content)
		if err != nil {
			return nil, err
		}
		result.Sections = append(result.Sections, section)
	}

	features, err := checklist.ParseFile(filepath.Join(dir, templates.DocsDir, "features.md"))
	if err != nil {
		return nil, fmt.Errorf("parse features: %w", err)
	}
	for i := range features {
		features[i].ProjectID = project.ID
		if err := tx.CreateFeature(&features[i]); err != nil {
			return nil, err
		}
	}
	result.Features = features
	return result, nil
}

// promptValues asks for every placeholder the template declares.
func (e *Editor) promptValues(tmpl *templates.Template, name string) (map[string]string, error) {
	values := map[string]string{templates.ProjectNameKey: name}
	if len(tmpl.Manifest.Prompts) == 0 {
		return values, nil
	}

	e.Console.Panel("Template Configuration",
		"Please provide information to populate your documentation templates:",
		console.ToneInfo)

	for _, p := range tmpl.Manifest.Prompts {
		if p.Key == templates.ProjectNameKey {
			continue
		}
		answer, err := e.Prompt.Input(p.Question, "")
		if err != nil {
			return nil, err
		}
		values[p.Key] = answer
	}
	return values, nil
}
