// Command auditreport-mcp is an MCP (Model Context Protocol) server that lets
// AI assistants edit and render a security audit report and its invoice.
// It is equivalent to "auditreport mcp".
//
// # Installation
//
//	go install github.com/kakehashi-asia/auditreport/cmd/auditreport-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "auditreport": {
//	      "command": "auditreport-mcp",
//	      "args": ["/path/to/report.yaml", "--save"]
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - get_document: Return the document being edited
//   - update_field: Set one field by path
//   - insert_entry: Append an entry to a list
//   - remove_entry: Remove a list entry by index or identifier
//   - set_logo: Set or clear the invoice logo
//   - get_view: Return the derived view (totals, charts, pages)
//   - render_report: Render the report and invoice to PDF
//
// # Available Resources
//
//   - report://document : The document as JSON
//   - report://view : The derived view
//   - report://pages : The fixed page table
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kakehashi-asia/auditreport/cli"
)

func main() {
	c := cli.NewCLI(cli.Options{})
	c.SetArgs(append([]string{"mcp"}, os.Args[1:]...))

	if err := c.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "auditreport-mcp: %v\n", err)
		os.Exit(1)
	}
}
