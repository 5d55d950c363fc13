package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/commands/options"
	"tableflip.dev/longread/pkg/config"
	"tableflip.dev/longread/pkg/runner/read"
	"tableflip.dev/longread/pkg/runner/source"
)

func addRead(topLevel *cobra.Command) {
	ro := &options.ReadOptions{}

	cmd := &cobra.Command{
		Use:   "read FILE",
		Short: "Open FILE in the reader. Use - for stdin.",
		Example: `
longread read README.md
longread read --watch --style dark docs/guide.md
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, args[0], ro)
		},
	}
	options.AddReadArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}

func runRead(cmd *cobra.Command, path string, ro *options.ReadOptions) error {
	cmd.SilenceUsage = true
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ro.NoAnimate {
		cfg.Animate = false
	}
	doc, err := source.Load(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	r := read.Read{
		Doc:    doc,
		Config: cfg,
		Watch:  ro.Watch,
		Debug:  ro.Debug,
		Style:  ro.Style,
	}
	return r.Do(cmd.Context())
}
