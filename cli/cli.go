// Package cli implements the auditreport command line: document templates,
// scripted edits, derived views, PDF rendering, and the HTTP and MCP
// editing servers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/config"
	"github.com/kakehashi-asia/auditreport/document"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd  *cobra.Command
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	cfgPath  string
	envFile  string
	logLevel string
	cfg      *config.Config
}

// Options contain the streams of the CLI. Nil streams default to the
// process's stdin, stdout and stderr.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		in:     opts.Input,
		out:    opts.Output,
		errOut: opts.ErrOutput,
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// SetArgs overrides the process arguments, e.g. to preselect a subcommand.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// Execute runs the command selected by the arguments.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "auditreport",
		Short:             "Edit and render monthly security audit reports with their invoice",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetIn(cli.in)
	cmd.SetOut(cli.out)
	cmd.SetErr(cli.errOut)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "",
		"Path to the config file (default is $XDG_CONFIG_HOME/"+config.RelPath+")")
	cmd.PersistentFlags().StringVar(&cli.envFile, "env-file", ".env",
		"Environment file with "+config.EnvPrefix+"_* overrides; ignored when missing")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error); overrides the config file")

	cmd.AddCommand(newTemplateCmd(cli))
	cmd.AddCommand(newEditCmd(cli))
	cmd.AddCommand(newViewCmd(cli))
	cmd.AddCommand(newRenderCmd(cli))
	cmd.AddCommand(newServeCmd(cli))
	cmd.AddCommand(newMCPCmd(cli))

	return cmd
}

// setup loads the configuration and stores the root logger in the command
// context, where subcommands find it with zerolog.Ctx.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	if cli.envFile != "" {
		if err := godotenv.Load(cli.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		if _, err := zerolog.ParseLevel(cli.logLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		cfg.Log.Level = cli.logLevel
	}
	cli.cfg = cfg

	logger := cfg.Logger(cli.errOut)
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("config loaded")
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// loadDocument reads the document at path, or returns the default document
// when path is empty.
func loadDocument(path string) (*document.Document, error) {
	if path == "" {
		return document.Default(), nil
	}
	doc, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
