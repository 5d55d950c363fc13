package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/commands/options"
	"tableflip.dev/longread/pkg/runner/outline"
	"tableflip.dev/longread/pkg/runner/source"
)

func addOutline(topLevel *cobra.Command) {
	var showID bool

	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Print the heading outline of FILE. Use - for stdin.",
		Example: `
longread outline README.md
longread outline --json --show-id README.md
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			doc, err := source.Load(args[0], cmd.InOrStdin())
			if err != nil {
				return oo.HandleError(err)
			}
			o := outline.Outline{
				Doc:    doc,
				JSON:   oo.JSON,
				ShowID: showID,
				Out:    cmd.OutOrStdout(),
			}
			return oo.HandleError(o.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&showID, "show-id", "k", false,
		"Show the anchor id of each heading.")

	topLevel.AddCommand(cmd)
}
