package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/server"
	"github.com/kakehashi-asia/auditreport/session"
)

type serveCmd struct {
	cli  *CLI
	addr string
	save bool
}

func newServeCmd(cli *CLI) *cobra.Command {
	sc := &serveCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Start the HTTP editing server",
		Long: "Serve one editing session over HTTP, starting from the document in file or " +
			"from the default document. Stops on SIGINT or SIGTERM.",
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.addr, "addr", "", "Listen address; overrides the config file")
	cmd.Flags().BoolVar(&sc.save, "save", false, "Write the edited document back to file on shutdown")

	return cmd
}

func (sc *serveCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())
	cfg := sc.cli.cfg

	path := optionalArg(args)
	if sc.save && path == "" {
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

	addr := cfg.Server.Addr
	if sc.addr != "" {
		addr = sc.addr
	}

	sess := session.New(doc, cfg.SessionOptions(*logger)...)
	api := server.NewWebAPI(*logger, sess, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		ViewOptions:     cfg.ViewOptions(),
		RenderOptions:   renderOpts,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Start(ctx); err != nil {
		return err
	}
	if sc.save {
		return saveSession(ctx, sess, path)
	}
	return nil
}

// saveSession writes the last committed snapshot to path unless nothing was
// edited.
func saveSession(ctx context.Context, sess *session.Session, path string) error {
	logger := zerolog.Ctx(ctx)
	doc, rev := sess.Snapshot()
	if rev == 0 {
		logger.Info().Msg("no edits, document left untouched")
		return nil
	}
	if err := document.Save(path, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	logger.Info().Str("file", path).Uint64("revision", rev).Msg("document saved")
	return nil
}
