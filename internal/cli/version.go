package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vibedocs/pkg/vibedocs"
)

const modulePath = "github.com/mesh-intelligence/vibedocs"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vibe version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "vibe v%s\nmodule: %s\n", vibedocs.Version, modulePath)
			return nil
		},
	}
}
