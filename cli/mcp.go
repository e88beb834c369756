package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/mcp"
	"github.com/kakehashi-asia/auditreport/session"
)

type mcpCmd struct {
	cli  *CLI
	save bool
}

func newMCPCmd(cli *CLI) *cobra.Command {
	mc := &mcpCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "mcp [file]",
		Short: "Start the MCP server on stdio",
		Long: "Serve one editing session to an AI assistant over the Model Context Protocol on " +
			"stdin and stdout. Logs go to stderr.",
		Args: cobra.MaximumNArgs(1),
		RunE: mc.run,
	}

	cmd.Flags().BoolVar(&mc.save, "save", false, "Write the edited document back to file when the client disconnects")

	return cmd
}

func (mc *mcpCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())
	cfg := mc.cli.cfg

	path := optionalArg(args)
	if mc.save && path == "" {
		return fmt.Errorf("--save requires a document file")
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	renderOpts, err := cfg.RenderOptions(*logger)
	if err != nil {
		return err
	}

	editor := &mcp.Editor{
		Session:       session.New(doc, cfg.SessionOptions(*logger)...),
		ViewOptions:   cfg.ViewOptions(),
		RenderOptions: renderOpts,
	}
	s := mcp.NewServerWithIO(mc.cli.in, mc.cli.out, mcp.WithLogger(*logger))
	mcp.RegisterTools(s, editor)
	mcp.RegisterResources(s, editor)

	logger.Info().Msg("mcp server ready")
	if err := s.Run(cmd.Context()); err != nil {
		return err
	}
	if mc.save {
		return saveSession(cmd.Context(), editor.Session, path)
	}
	return nil
}
