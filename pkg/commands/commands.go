// Package commands wires the longread CLI.
package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

// New returns the root command. Given a single FILE it opens the reader.
func New() *cobra.Command {
	ro := &options.ReadOptions{}

	cmd := &cobra.Command{
		Use:   "longread [FILE]",
		Short: options.Wrap80("Read long markdown documents with a live outline and progress bar."),
		Example: `
longread README.md
longread read --watch docs/guide.md
cat notes.md | longread -
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runRead(cmd, args[0], ro)
		},
	}
	options.AddReadArgs(cmd, ro)

	AddCommands(cmd)
	return cmd
}

// AddCommands registers the subcommands on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addRead(topLevel)
	addOutline(topLevel)
	addExport(topLevel)
	addVersion(topLevel)
}
