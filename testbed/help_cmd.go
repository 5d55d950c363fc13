package main

import (
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/tui/components/help"
	"tableflip.dev/longread/pkg/tui/theme"
)

func newHelpCmd(opts *options) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "help-overlay",
		Short: "Render the help overlay component",
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay := help.New(style, theme.Default().Panel.Frame)
			return run(newTestbedModel(*opts, overlay))
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style")
	return cmd
}
