package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/document"
)

type templateCmd struct {
	cli    *CLI
	format string
}

func newTemplateCmd(cli *CLI) *cobra.Command {
	tc := &templateCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "template [file]",
		Short: "Write the default report document",
		Long: "Write the default report document to file, choosing YAML or JSON from its extension, " +
			"or to stdout in the format given by --format.",
		Args: cobra.MaximumNArgs(1),
		RunE: tc.run,
	}

	cmd.Flags().StringVar(&tc.format, "format", "yaml", "Format used on stdout (yaml or json)")

	return cmd
}

func (tc *templateCmd) run(cmd *cobra.Command, args []string) error {
	doc := document.Default()

	if len(args) == 0 {
		return document.Encode(cmd.OutOrStdout(), doc, document.Format(tc.format))
	}
	if err := document.Save(args[0], doc); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	zerolog.Ctx(cmd.Context()).Info().Str("file", args[0]).Msg("template written")
	return nil
}
