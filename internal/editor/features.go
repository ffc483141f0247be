package editor

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/vibedocs/internal/checklist"
	"github.com/mesh-intelligence/vibedocs/internal/sqlite"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// Status choices for a feature.
const (
	CompletedLabel    = "✅ Completed"
	NotCompletedLabel = "❌ Not Completed"
	NewCategoryLabel  = "New Category"
)

var statusOptions = []string{CompletedLabel, NotCompletedLabel}

func statusDefault(completed bool) int {
	if completed {
		return 0
	}
	return 1
}

// editFeatures walks every feature's status, optionally adds one, and
// regenerates the checklist file from the store. All of it shares one
// transaction with the section update.
func (s *session) editFeatures() (State, error) {
	err := s.persist(func(tx *sqlite.Backend) (string, error) {
		features, err := tx.ListFeatures(s.project.ID)
		if err != nil {
			return "", err
		}
		groups := checklist.GroupByCategory(features)

		for _, g := range groups {
			s.e.Console.Heading(g.Category + ":")
			for _, f := range g.Features {
				if err := s.toggleFeature(tx, f); err != nil {
					return "", err
				}
			}
		}

		add, err := s.e.Prompt.Confirm("Would you like to add a new feature?", false)
		if err != nil {
			return "", err
		}
		if add {
			if err := s.addFeature(tx, groups); err != nil {
				return "", err
			}
		}

		features, err = tx.ListFeatures(s.project.ID)
		if err != nil {
			return "", err
		}
		return checklist.Serialize(features), nil
	})
	if err != nil {
		return StateEditFeatures, err
	}
	return StateNextSection, nil
}

func (s *session) toggleFeature(tx *sqlite.Backend, f types.Feature) error {
	choice, err := s.e.Prompt.Select(
		fmt.Sprintf("%s: %s", f.Name, f.Description),
		statusOptions, statusDefault(f.Completed),
	)
	if err != nil {
		return err
	}
	completed := choice == 0
	if completed == f.Completed {
		return nil
	}
	s.logger.Debug("feature status", "feature", f.Name, "completed", completed)
	return tx.UpdateFeatureCompleted(f.ID, completed)
}

func (s *session) addFeature(tx *sqlite.Backend, groups []checklist.Group) error {
	options := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		options = append(options, g.Category)
	}
	options = append(options, NewCategoryLabel)

	choice, err := s.e.Prompt.Select("Select category:", options, 0)
	if err != nil {
		return err
	}
	category := options[choice]
	if choice == len(options)-1 {
		category, err = s.askLine("Enter new category name:")
		if err != nil {
			return err
		}
	}

	name, err := s.askLine("Feature name:")
	if err != nil {
		return err
	}
	// Descriptions may contain ':' since the name ends at the first one.
	description, err := s.e.Prompt.Input("Feature description:", "")
	if err != nil {
		return err
	}
	description = strings.TrimSpace(strings.ReplaceAll(description, "\n", " "))

	status, err := s.e.Prompt.Select("Status:", statusOptions, statusDefault(false))
	if err != nil {
		return err
	}

	f := types.Feature{
		ProjectID:   s.project.ID,
		Name:        name,
		Description: description,
		Completed:   status == 0,
		Category:    category,
	}
	if err := tx.CreateFeature(&f); err != nil {
		return err
	}
	s.logger.Info("feature added", "feature", f.Name, "category", f.Category)
	return nil
}

// askLine asks until it gets a non-empty single-line answer without ':',
// which the checklist format could not round-trip.
func (s *session) askLine(question string) (string, error) {
	for {
		answer, err := s.e.Prompt.Input(question, "")
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer != "" && !strings.ContainsAny(answer, ":\n") {
			return answer, nil
		}
		s.e.Console.Warn("Please enter a non-empty value without ':' or line breaks")
	}
}
