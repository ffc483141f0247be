package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/internal/editor"
)

func newUpdateCmd(a *app) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Interactively update the most recent project's documentation",
		Long: "Walk the sections of the most recently updated project, offering to edit\n" +
			"each one. The features section edits the checklist entry by entry and\n" +
			"regenerates features.md from the store.",
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

			res, err := a.newEditor(backend, cfg).Update(editor.UpdateOptions{Section: section})
			if err != nil {
				return classify(err)
			}
			if a.jsonMode {
				return writeJSON(a.out, res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "only update the named section")
	return cmd
}
