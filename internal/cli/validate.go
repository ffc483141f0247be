package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/validate"
)

// errIssuesFound makes validate exit non-zero when the report is not clean.
var errIssuesFound = errors.New("validation found issues")

func newValidateCmd(a *app) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a project's files against the store",
		Long: "Check every section of a project: the file exists, matches the content\n" +
			"last saved, has no unfilled {{placeholders}}, and has a level-1 heading.\n" +
			"The features checklist must match the stored features.",
		Args: cobra.NoArgs,
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
			report, err := validate.Project(backend, p)
			if err != nil {
				return classify(err)
			}

			if a.jsonMode {
				if err := writeJSON(a.out, report); err != nil {
					return sysError(err)
				}
			} else {
				printReport(console.New(a.out), report)
			}
			if !report.OK() {
				return userError(fmt.Errorf("%w: %d", errIssuesFound, len(report.Issues)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (default: most recently updated)")
	return cmd
}

func printReport(c *console.Console, r *validate.Report) {
	if r.OK() {
		c.Success("✅ %s: %d sections checked, no issues", r.Project, r.Sections)
		return
	}
	c.Panel(r.Project, fmt.Sprintf("%d sections checked, %d issues", r.Sections, len(r.Issues)), console.ToneError)
	for _, issue := range r.Issues {
		c.Printf("  %-20s %-16s %s\n", issue.Section, issue.Kind, issue.Message)
	}
}
