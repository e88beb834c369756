package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
)

type renderCmd struct {
	cli    *CLI
	output string
	code   string
	size   string
}

func newRenderCmd(cli *CLI) *cobra.Command {
	rc := &renderCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a report document and its invoice to PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.output, "output", "o", "report.pdf", "Output PDF path, - for stdout")
	cmd.Flags().StringVar(&rc.code, "code", "", "Remittance code on the invoice (none, qr, pdf417); overrides the config file")
	cmd.Flags().StringVar(&rc.size, "page-size", "", "Page size (A4, Letter, ...); overrides the config file")

	return cmd
}

func (rc *renderCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())

	doc, err := loadDocument(optionalArg(args))
	if err != nil {
		return err
	}
	opts, err := rc.cli.cfg.RenderOptions(*logger)
	if err != nil {
		return err
	}
	if rc.code != "" {
		switch code := render.RemittanceCode(rc.code); code {
		case render.CodeNone, render.CodeQR, render.CodePDF417:
			opts = append(opts, render.WithRemittanceCode(code))
		default:
			return fmt.Errorf("invalid --code %q: expected none, qr or pdf417", rc.code)
		}
	}
	if rc.size != "" {
		opts = append(opts, render.WithPageSize(rc.size))
	}

	// A failed render must not leave a truncated file.
	var buf bytes.Buffer
	res, err := render.Render(&buf, pagination.Build(doc, rc.cli.cfg.ViewOptions()...), opts...)
	if err != nil {
		return err
	}

	if rc.output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(rc.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	logger.Info().
		Str("file", rc.output).
		Int("pages", res.Pages).
		Int("bytes", buf.Len()).
		Msg("report rendered")
	return nil
}
