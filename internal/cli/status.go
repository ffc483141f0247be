package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/internal/checklist"
	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// statusReport is the --json form of the status command.
type statusReport struct {
	Project    *types.Project   `json:"project"`
	Sections   []string         `json:"sections"`
	Categories []categoryStatus `json:"categories"`
	Completed  int              `json:"completed"`
	Total      int              `json:"total"`
	Projects   []string         `json:"projects"`
}

type categoryStatus struct {
	Name      string          `json:"name"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Features  []types.Feature `json:"features"`
}

func newStatusCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a project's sections and feature progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return classify(err)
			}
			backend, err := a.attachBackend(cfg, true)
			if err != nil {
				return classify(err)
			}
			defer backend.Detach()

			p, err := activeProject(backend, project)
			if err != nil {
				return classify(err)
			}
			sections, err := backend.GetSections(p.ID, "")
			if err != nil {
				return classify(err)
			}
			features, err := backend.ListFeatures(p.ID)
			if err != nil {
				return classify(err)
			}

			projects, err := backend.ListProjects()
			if err != nil {
				return classify(err)
			}

			report := buildStatus(p, sections, features)
			for _, other := range projects {
				report.Projects = append(report.Projects, other.Name)
			}
			if a.jsonMode {
				return writeJSON(a.out, report)
			}
			printStatus(console.New(a.out), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (default: most recently updated)")
	return cmd
}

func buildStatus(p *types.Project, sections []*types.Section, features []types.Feature) statusReport {
	report := statusReport{
		Project:    p,
		Sections:   []string{},
		Categories: []categoryStatus{},
		Projects:   []string{},
	}
	for _, s := range sections {
		report.Sections = append(report.Sections, s.Name)
	}
	for _, g := range checklist.GroupByCategory(features) {
		cs := categoryStatus{Name: g.Category, Total: len(g.Features), Features: g.Features}
		for _, f := range g.Features {
			if f.Completed {
				cs.Completed++
			}
		}
		report.Completed += cs.Completed
		report.Total += cs.Total
		report.Categories = append(report.Categories, cs)
	}
	return report
}

func printStatus(c *console.Console, r statusReport) {
	c.Panel(r.Project.Name, fmt.Sprintf("Template: %s\nPath:     %s\nUpdated:  %s",
		r.Project.Template, r.Project.Path, r.Project.UpdatedAt.Local().Format("2006-01-02 15:04:05")),
		console.ToneInfo)

	c.Heading("Sections:")
	for _, name := range r.Sections {
		c.Println("  " + name)
	}

	c.Heading(fmt.Sprintf("Features: %d/%d completed", r.Completed, r.Total))
	for _, cat := range r.Categories {
		c.Println()
		c.Printf("%s (%d/%d)\n", cat.Name, cat.Completed, cat.Total)
		for _, f := range cat.Features {
			c.Println("  " + checklist.Line(f))
		}
	}

	if len(r.Projects) > 1 {
		c.Println()
		c.Printf("Tracked projects: %s\n", strings.Join(r.Projects, ", "))
	}
}
