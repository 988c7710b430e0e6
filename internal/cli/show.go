package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/typelate/reportstamp/internal/stamp"
)

func newShowCommand(wd string, global *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		document string
		raw      bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current marker block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := global.root(wd)
			if err != nil {
				return err
			}
			u := stamp.New(stamp.NewStorage(), newLogger(global.verbose, stderr))
			block, err := u.Current(cmd.Context(), root, document)
			if err != nil {
				return err
			}
			if raw {
				_, err = fmt.Fprintln(stdout, block)
				return err
			}
			rendered, err := renderMarkdown(block)
			if err != nil {
				return err
			}
			_, err = io.WriteString(stdout, rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&document, documentFlag, stamp.DefaultDocument, "document to read, relative to the root")
	cmd.Flags().BoolVar(&raw, rawFlag, false, "print the block without rendering it")
	return cmd
}

func renderMarkdown(source string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(source)
}
