package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
)

// RegisterResources adds the session resources to the server.
// Resources use the report:// scheme.
func RegisterResources(s *Server, e *Editor) {
	s.AddResource(Resource{
		URI:         "report://document",
		Name:        "Report Document",
		Description: "The report document being edited, as JSON.",
		MIMEType:    "application/json",
		Handler:     e.handleDocumentResource,
	})

	s.AddResource(Resource{
		URI:         "report://view",
		Name:        "Report View",
		Description: "The derived view of the document: totals, chart geometry and page content.",
		MIMEType:    "application/json",
		Handler:     e.handleViewResource,
	})

	s.AddResource(Resource{
		URI:         "report://pages",
		Name:        "Report Pages",
		Description: "The fixed page table: page numbers, sections, chapters and which pages may overflow.",
		MIMEType:    "application/json",
		Handler:     handlePagesResource,
	})
}

func (e *Editor) handleDocumentResource(uri string) ([]ResourceContent, error) {
	var buf bytes.Buffer
	if err := document.Encode(&buf, e.Session.Document(), document.FormatJSON); err != nil {
		return nil, err
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     buf.String(),
	}}, nil
}

func (e *Editor) handleViewResource(uri string) ([]ResourceContent, error) {
	return jsonResource(uri, pagination.Build(e.Session.Document(), e.ViewOptions...))
}

func handlePagesResource(uri string) ([]ResourceContent, error) {
	return jsonResource(uri, pagination.Pages())
}

func jsonResource(uri string, v any) ([]ResourceContent, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}
