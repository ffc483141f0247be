package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/internal/editor"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
)

func newInitCmd(a *app) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new project from a documentation template",
		Long: "Create a project directory named <name> under the projects directory,\n" +
			"populate it from a template after asking for the template's values, and\n" +
			"record its sections and features in the store.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return classify(err)
			}
			if template == "" {
				template = cfg.DefaultTemplate
			}
			if !templates.Known(template) {
				_, err := templateStore(cfg).Get(template)
				return classify(err)
			}

			backend, err := a.attachBackend(cfg, false)
			if err != nil {
				return classify(err)
			}
			defer backend.Detach()

			res, err := a.newEditor(backend, cfg).Init(editor.InitOptions{
				Name:        args[0],
				Template:    template,
				ProjectsDir: cfg.ProjectsDir,
			})
			if err != nil {
				return classify(err)
			}
			if a.jsonMode {
				return writeJSON(a.out, res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template name (default: default_template from config)")
	return cmd
}
