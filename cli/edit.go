package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/session"
)

type editCmd struct {
	cli       *CLI
	sets      []string
	inserts   []string
	removes   []string
	removeIDs []string
	output    string
}

func newEditCmd(cli *CLI) *cobra.Command {
	ec := &editCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Apply field updates and list edits to a report document",
		Long: "Apply edits to a report document and save it. Field updates run first, then " +
			"inserts, then removals by identifier, then removals by index. Each group runs in " +
			"flag order. Nothing is written if any edit fails.",
		Example: `  auditreport edit report.yaml --set meta.clientName="Acme Corp" --set invoice.taxRatePercent=10
  auditreport edit report.yaml --insert assets --insert 'news={"title":"Patch Tuesday"}'
  auditreport edit report.yaml --remove news:0 --remove-id assets:MOB-002`,
		Args: cobra.ExactArgs(1),
		RunE: ec.run,
	}

	cmd.Flags().StringArrayVar(&ec.sets, "set", nil, "Set a field: path=value (JSON objects and arrays are accepted as values)")
	cmd.Flags().StringArrayVar(&ec.inserts, "insert", nil, "Append an entry: list or list={json}")
	cmd.Flags().StringArrayVar(&ec.removes, "remove", nil, "Remove an entry by index: list:index")
	cmd.Flags().StringArrayVar(&ec.removeIDs, "remove-id", nil, "Remove an entry by identifier: list:id")
	cmd.Flags().StringVarP(&ec.output, "output", "o", "", "Write the result here instead of overwriting <file>")

	return cmd
}

func (ec *editCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	sess := session.New(doc, ec.cli.cfg.SessionOptions(*logger)...)

	for _, s := range ec.sets {
		path, raw, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: expected path=value", s)
		}
		if _, err := sess.Update(path, parseValue(raw)); err != nil {
			return err
		}
	}

	for _, s := range ec.inserts {
		list, raw, hasEntity := strings.Cut(s, "=")
		var entity any
		if hasEntity {
			var m map[string]any
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				return fmt.Errorf("invalid --insert %q: %w", s, err)
			}
			entity = m
		}
		id, err := sess.Insert(document.ListName(list), entity)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", list, id)
	}

	for _, s := range ec.removeIDs {
		list, id, ok := strings.Cut(s, ":")
		if !ok {
			return fmt.Errorf("invalid --remove-id %q: expected list:id", s)
		}
		if err := sess.RemoveByID(document.ListName(list), id); err != nil {
			return err
		}
	}

	for _, s := range ec.removes {
		list, raw, ok := strings.Cut(s, ":")
		if !ok {
			return fmt.Errorf("invalid --remove %q: expected list:index", s)
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid --remove %q: %w", s, err)
		}
		if err := sess.RemoveAt(document.ListName(list), index); err != nil {
			return err
		}
	}

	out := ec.output
	if out == "" {
		out = args[0]
	}
	doc, rev := sess.Snapshot()
	if err := document.Save(out, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	logger.Info().Str("file", out).Uint64("edits", rev).Msg("document saved")
	return nil
}

// parseValue decodes JSON objects and arrays; anything else is passed on as
// a string and converted by the field's type.
func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return raw
}
