package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	auditreport "github.com/kakehashi-asia/auditreport"
	"github.com/kakehashi-asia/auditreport/pagination"
)

type viewCmd struct {
	cli   *CLI
	page  int
	pages bool
}

func newViewCmd(cli *CLI) *cobra.Command {
	vc := &viewCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Print the derived view of a report document as JSON",
		Long: "Print the derived view (invoice totals, chart geometry and page content) of the " +
			"document in file, or of the default document when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: vc.run,
	}

	cmd.Flags().IntVar(&vc.page, "page", 0, "Print only this page (1-based)")
	cmd.Flags().BoolVar(&vc.pages, "pages", false, "Print the page table instead of the view")

	return cmd
}

func (vc *viewCmd) run(cmd *cobra.Command, args []string) error {
	var out any
	if vc.pages {
		out = pagination.Pages()
	} else {
		doc, err := loadDocument(optionalArg(args))
		if err != nil {
			return err
		}
		v := pagination.Build(doc, vc.cli.cfg.ViewOptions()...)
		out = v
		if vc.page != 0 {
			p := v.Page(vc.page)
			if p == nil {
				return auditreport.Errorf("View", auditreport.ErrIndexOutOfRange, "page %d of %d", vc.page, v.TotalPages)
			}
			out = p
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}
