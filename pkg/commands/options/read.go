package options

import (
	"github.com/spf13/cobra"
)

// ReadOptions are the flags of the interactive reader.
type ReadOptions struct {
	Watch     bool
	NoAnimate bool
	Debug     bool
	Style     string
}

// AddReadArgs registers the reader flags on cmd.
func AddReadArgs(cmd *cobra.Command, o *ReadOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		Wrap80("Reload the document when the file changes on disk."))
	cmd.Flags().BoolVar(&o.NoAnimate, "no-animate", false,
		Wrap80("Jump instead of scrolling smoothly."))
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		Wrap80("Show the event viewer under the document."))
	AddStyleArg(cmd, &o.Style)
}

// AddStyleArg registers --style. An empty value defers to the config file.
func AddStyleArg(cmd *cobra.Command, style *string) {
	cmd.Flags().StringVar(style, "style", "",
		Wrap80(`Markdown style, one of "auto", "dark", "light" or "notty".`))
}

// ExportOptions are the flags of the export command.
type ExportOptions struct {
	Out   string
	Title string
}

// AddExportArgs registers the export flags on cmd.
func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		Wrap80("Write the HTML to this file instead of stdout."))
	cmd.Flags().StringVar(&o.Title, "title", "",
		Wrap80("Page title. Defaults to the first heading."))
}
