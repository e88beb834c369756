// Command auditreport edits and renders monthly security audit reports
// together with their invoice.
//
// # Installation
//
//	go install github.com/kakehashi-asia/auditreport/cmd/auditreport@latest
//
// # Usage
//
//	auditreport template report.yaml
//	auditreport edit report.yaml --set meta.clientName="Acme Corp" --insert assets
//	auditreport view report.yaml --page 11
//	auditreport render report.yaml -o report.pdf
//	auditreport serve report.yaml --save
//	auditreport mcp report.yaml --save
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kakehashi-asia/auditreport/cli"
)

func main() {
	c := cli.NewCLI(cli.Options{})

	if err := c.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "auditreport: %v\n", err)
		os.Exit(1)
	}
}
