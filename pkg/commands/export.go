package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/commands/options"
	"tableflip.dev/longread/pkg/runner/export"
	"tableflip.dev/longread/pkg/runner/source"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write FILE as a standalone HTML page with a live outline.",
		Example: `
longread export README.md > readme.html
longread export -o guide.html --title "User Guide" docs/guide.md
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			doc, err := source.Load(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			e := export.Export{
				Doc:   doc,
				Title: eo.Title,
				Path:  eo.Out,
				Out:   cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}
	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
