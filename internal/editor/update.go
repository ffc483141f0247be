package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/sqlite"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// State is a step of an update session.
type State int

const (
	StateLoad State = iota
	StateNextSection
	StateAskSection
	StateEditText
	StateEditFeatures
	StateFinish
	StateDone
	StateAborted
)

var stateNames = map[State]string{
	StateLoad:         "load",
	StateNextSection:  "next_section",
	StateAskSection:   "ask_section",
	StateEditText:     "edit_text",
	StateEditFeatures: "edit_features",
	StateFinish:       "finish",
	StateDone:         "done",
	StateAborted:      "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UpdateOptions selects what an update session visits.
type UpdateOptions struct {
	Section string // Restrict the session to one section name; empty visits all.
}

// UpdateResult summarizes an update session.
type UpdateResult struct {
	Project *types.Project `json:"project"`
	State   State          `json:"state"`   // StateDone or StateAborted.
	Changed []string       `json:"changed"` // Names of sections whose content changed.
	Skipped []string       `json:"skipped"` // Names of sections whose files were missing.
}

// session walks a project's sections one state at a time.
type session struct {
	e      *Editor
	opts   UpdateOptions
	logger *log.Logger

	project  *types.Project
	sections []*types.Section
	next     int

	current  *types.Section
	path     string // Absolute path of current's file.
	previous string // Bytes on disk before editing current.

	result UpdateResult
}

// Update runs an interactive session over the most recently updated project.
// Each changed section is written to disk and to the store together; the
// project timestamp is bumped once at the end if anything changed.
//
// When the user cancels, edits already saved are kept, the section being
// edited is discarded, and the result carries StateAborted along with
// types.ErrAborted.
func (e *Editor) Update(opts UpdateOptions) (*UpdateResult, error) {
	s := &session{
		e:      e,
		opts:   opts,
		logger: e.Logger.With("session", newSessionID()),
	}

	state := StateLoad
	for {
		var err error
		switch state {
		case StateLoad:
			state, err = s.load()
		case StateNextSection:
			state, err = s.nextSection()
		case StateAskSection:
			state, err = s.askSection()
		case StateEditText:
			state, err = s.editText()
		case StateEditFeatures:
			state, err = s.editFeatures()
		case StateFinish:
			state, err = s.finish()
		case StateDone:
			s.result.State = StateDone
			return &s.result, nil
		default:
			return nil, fmt.Errorf("update session: unexpected %s", state)
		}

		if err != nil {
			if errors.Is(err, types.ErrAborted) && s.project != nil {
				s.result.State = StateAborted
				s.logger.Info("session aborted", "changed", len(s.result.Changed))
				return &s.result, err
			}
			return nil, err
		}
		s.logger.Debug("transition", "to", state)
	}
}

func (s *session) load() (State, error) {
	project, err := s.e.Store.MostRecentProject()
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return StateLoad, types.ErrNoProject
		}
		return StateLoad, err
	}
	s.project = project
	s.result.Project = project
	s.logger = s.logger.With("project", project.Name)

	sections, err := s.e.Store.GetSections(project.ID, s.opts.Section)
	if err != nil {
		return StateLoad, err
	}
	if s.opts.Section != "" && len(sections) == 0 {
		return StateLoad, fmt.Errorf("%w: %q", types.ErrSectionNotFound, s.opts.Section)
	}
	s.sections = sections

	s.e.Console.Panel("Vibe Docs",
		fmt.Sprintf("Updating documentation for project: %s", project.Name),
		console.ToneInfo)
	return StateNextSection, nil
}

func (s *session) nextSection() (State, error) {
	for s.next < len(s.sections) {
		sec := s.sections[s.next]
		s.next++

		path := filepath.Join(s.project.Path, filepath.FromSlash(sec.FilePath))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.e.Console.Warn("Section file %s not found, skipping", path)
				s.logger.Warn("section file missing", "section", sec.Name, "path", path)
				s.result.Skipped = append(s.result.Skipped, sec.Name)
				continue
			}
			return StateNextSection, fmt.Errorf("read section %s: %w", sec.Name, err)
		}

		s.current = sec
		s.path = path
		s.previous = string(data)
		return StateAskSection, nil
	}
	return StateFinish, nil
}

func (s *session) askSection() (State, error) {
	s.e.Console.Heading(fmt.Sprintf("Updating %s:", s.current.Name))
	edit, err := s.e.Prompt.Confirm(fmt.Sprintf("Would you like to update %s?", s.current.Name), false)
	if err != nil {
		return StateAskSection, err
	}
	switch {
	case !edit:
		return StateNextSection, nil
	case s.current.Name == types.FeaturesSection:
		return StateEditFeatures, nil
	default:
		return StateEditText, nil
	}
}

func (s *session) editText() (State, error) {
	err := s.persist(func(*sqlite.Backend) (string, error) {
		return s.e.Prompt.Edit("Enter new content (or keep the current content):", s.previous)
	})
	if err != nil {
		return StateEditText, err
	}
	return StateNextSection, nil
}

func (s *session) finish() (State, error) {
	if len(s.result.Changed) > 0 {
		if err := s.e.Store.TouchProject(s.project.ID); err != nil {
			return StateFinish, err
		}
		project, err := s.e.Store.GetProject(s.project.ID)
		if err != nil {
			return StateFinish, err
		}
		s.project = project
		s.result.Project = project
	}
	s.logger.Info("session done", "changed", len(s.result.Changed), "skipped", len(s.result.Skipped))
	s.e.Console.Success("Documentation updated successfully for project: %s", s.project.Name)
	return StateDone, nil
}

// persist runs edit inside a transaction and saves the text it returns as the
// current section's content. The store change commits only after the file is
// written; if the commit fails, the previous file bytes are restored. Text
// equal to what is on disk is not written.
func (s *session) persist(edit func(tx *sqlite.Backend) (string, error)) error {
	sec := s.current
	written := false

	var content string
	err := s.e.Store.WithTx(func(tx *sqlite.Backend) error {
		var err error
		content, err = edit(tx)
		if err != nil {
			return err
		}
		if content == s.previous {
			return nil
		}
		if err := tx.UpdateSectionContent(sec.ID, content); err != nil {
			return err
		}
		if err := writeFile(s.path, content); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		if written {
			if rerr := writeFile(s.path, s.previous); rerr != nil {
				s.logger.Error("restore section file", "section", sec.Name, "err", rerr)
			}
		}
		return err
	}

	if written {
		sec.Content = content
		s.result.Changed = append(s.result.Changed, sec.Name)
		s.logger.Info("section updated", "section", sec.Name)
	}
	return nil
}
