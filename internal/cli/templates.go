package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/templates"
)

type templateInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Prompts     []string `json:"prompts"`
	Files       []string `json:"files"`
}

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available documentation templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return classify(err)
			}
			store := templateStore(cfg)

			var infos []templateInfo
			for _, name := range templates.Names() {
				t, err := store.Get(name)
				if err != nil {
					return classify(err)
				}
				info := templateInfo{Name: t.Name, Description: t.Manifest.Description}
				for _, p := range t.Manifest.Prompts {
					info.Prompts = append(info.Prompts, p.Key)
				}
				for _, f := range t.Files {
					info.Files = append(info.Files, f.RelPath)
				}
				infos = append(infos, info)
			}

			if a.jsonMode {
				return writeJSON(a.out, infos)
			}
			c := console.New(a.out)
			for _, info := range infos {
				c.Heading(info.Name)
				if info.Description != "" {
					c.Muted("%s", info.Description)
				}
				for _, f := range info.Files {
					c.Println("  " + f)
				}
			}
			return nil
		},
	}
}
