package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	auditreport "github.com/kakehashi-asia/auditreport"
	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
	"github.com/kakehashi-asia/auditreport/session"
)

// Editor binds the tools and resources of a Server to one editing session.
type Editor struct {
	Session       *session.Session
	ViewOptions   []pagination.Option
	RenderOptions []render.Option
}

// RegisterTools adds the document editing tools to the server.
func RegisterTools(s *Server, e *Editor) {
	s.AddTool(e.getDocumentTool())
	s.AddTool(e.updateFieldTool())
	s.AddTool(e.insertEntryTool())
	s.AddTool(e.removeEntryTool())
	s.AddTool(e.setLogoTool())
	s.AddTool(e.getViewTool())
	s.AddTool(e.renderReportTool())
}

func listNames() []string {
	lists := document.Lists()
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = string(l)
	}
	return names
}

func (e *Editor) getDocumentTool() Tool {
	return Tool{
		Name:        "get_document",
		Description: "Return the report document being edited, with its revision number.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"format": map[string]any{
					"type":        "string",
					"enum":        []string{"json", "yaml"},
					"description": "Encoding of the returned document. Defaults to json.",
				},
			},
		},
		Handler: e.handleGetDocument,
	}
}

func (e *Editor) handleGetDocument(args map[string]any) (ToolResult, error) {
	format := document.FormatJSON
	if f, ok := args["format"].(string); ok && f != "" {
		format = document.Format(strings.ToLower(f))
	}

	doc, rev := e.Session.Snapshot()
	var buf bytes.Buffer
	if err := document.Encode(&buf, doc, format); err != nil {
		return ToolResult{}, err
	}
	return textResult(fmt.Sprintf("Revision %d\n%s", rev, buf.String())), nil
}

func (e *Editor) updateFieldTool() Tool {
	return Tool{
		Name: "update_field",
		Description: "Set one field of the document. Paths use dotted JSON names. Members of lists with an id " +
			"are addressed by that id, e.g. assets[MOB-001].status, invoice.items[1].quantity; threatStats and " +
			"resourceStats members by zero-based index, e.g. resourceStats.cpu[0].value. " +
			"Numeric fields accept numbers or numeric strings.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Field path",
				},
				"value": map[string]any{
					"description": "New value",
				},
			},
			"required": []string{"path", "value"},
		},
		Handler: e.handleUpdateField,
	}
}

func (e *Editor) handleUpdateField(args map[string]any) (ToolResult, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}
	value, ok := args["value"]
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'value' argument")
	}

	if _, err := e.Session.Update(path, value); err != nil {
		return ToolResult{}, err
	}
	return textResult(fmt.Sprintf("Updated %s (revision %d)", path, e.Session.Revision())), nil
}

func (e *Editor) insertEntryTool() Tool {
	return Tool{
		Name:        "insert_entry",
		Description: "Append an entry to a resizable list. Without an entity the list's blank template is inserted. Returns the new entry's identifier.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"list": map[string]any{
					"type":        "string",
					"enum":        listNames(),
					"description": "List to append to",
				},
				"entity": map[string]any{
					"type":        "object",
					"description": "Optional field values for the new entry",
				},
			},
			"required": []string{"list"},
		},
		Handler: e.handleInsertEntry,
	}
}

func (e *Editor) handleInsertEntry(args map[string]any) (ToolResult, error) {
	list, ok := args["list"].(string)
	if !ok || list == "" {
		return ToolResult{}, fmt.Errorf("missing 'list' argument")
	}

	var (
		id  string
		err error
	)
	if entity, ok := args["entity"].(map[string]any); ok {
		id, err = e.Session.Insert(document.ListName(list), entity)
	} else {
		id, err = e.Session.Insert(document.ListName(list), nil)
	}
	if err != nil {
		return ToolResult{}, err
	}
	if id == "" {
		return textResult(fmt.Sprintf("Inserted entry into %s", list)), nil
	}
	return textResult(fmt.Sprintf("Inserted %s into %s", id, list)), nil
}

func (e *Editor) removeEntryTool() Tool {
	return Tool{
		Name:        "remove_entry",
		Description: "Remove an entry from a resizable list, addressed either by zero-based index or by identifier.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"list": map[string]any{
					"type":        "string",
					"enum":        listNames(),
					"description": "List to remove from",
				},
				"index": map[string]any{
					"type":        "integer",
					"description": "Zero-based position of the entry",
				},
				"id": map[string]any{
					"type":        "string",
					"description": "Identifier of the entry",
				},
			},
			"required": []string{"list"},
		},
		Handler: e.handleRemoveEntry,
	}
}

func (e *Editor) handleRemoveEntry(args map[string]any) (ToolResult, error) {
	list, ok := args["list"].(string)
	if !ok || list == "" {
		return ToolResult{}, fmt.Errorf("missing 'list' argument")
	}

	if id, ok := args["id"].(string); ok && id != "" {
		if err := e.Session.RemoveByID(document.ListName(list), id); err != nil {
			return ToolResult{}, err
		}
		return textResult(fmt.Sprintf("Removed %s from %s", id, list)), nil
	}

	raw, ok := args["index"].(float64)
	if !ok {
		return ToolResult{}, fmt.Errorf("one of 'index' or 'id' is required")
	}
	if raw != math.Trunc(raw) {
		return ToolResult{}, auditreport.Errorf("RemoveAt", auditreport.ErrInvalidValue, "index %v is not an integer", raw)
	}
	index := int(raw)
	if err := e.Session.RemoveAt(document.ListName(list), index); err != nil {
		return ToolResult{}, err
	}
	return textResult(fmt.Sprintf("Removed entry %d from %s", index, list)), nil
}

func (e *Editor) setLogoTool() Tool {
	return Tool{
		Name:        "set_logo",
		Description: "Set the invoice logo from base64 image data or an image file (PNG, JPEG, GIF, BMP, TIFF, WebP). With neither argument the logo is cleared.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"data": map[string]any{
					"type":        "string",
					"description": "Base64 encoded image",
				},
				"path": map[string]any{
					"type":        "string",
					"description": "Path to an image file",
				},
			},
		},
		Handler: e.handleSetLogo,
	}
}

func (e *Editor) handleSetLogo(args map[string]any) (ToolResult, error) {
	var blob []byte
	if data, ok := args["data"].(string); ok && data != "" {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return ToolResult{}, auditreport.Errorf("SetLogo", auditreport.ErrInvalidImage, "decoding base64: %v", err)
		}
		blob = decoded
	} else if path, ok := args["path"].(string); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ToolResult{}, fmt.Errorf("reading logo: %w", err)
		}
		blob = data
	}

	if err := e.Session.SetLogo(blob); err != nil {
		return ToolResult{}, err
	}
	if len(blob) == 0 {
		return textResult("Logo cleared"), nil
	}
	return textResult(fmt.Sprintf("Logo set (%d bytes)", len(blob))), nil
}

func (e *Editor) getViewTool() Tool {
	return Tool{
		Name:        "get_view",
		Description: "Return the derived view of the report: invoice totals and formatted amounts, chart geometry, and the content of each of the report's pages.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page": map[string]any{
					"type":        "integer",
					"description": "Optional one-based page number; only that page is returned",
				},
			},
		},
		Handler: e.handleGetView,
	}
}

func (e *Editor) handleGetView(args map[string]any) (ToolResult, error) {
	v := pagination.Build(e.Session.Document(), e.ViewOptions...)

	var out any = v
	if raw, ok := args["page"].(float64); ok {
		p := v.Page(int(raw))
		if p == nil || raw != math.Trunc(raw) {
			return ToolResult{}, auditreport.Errorf("GetView", auditreport.ErrIndexOutOfRange, "page %v of %d", raw, v.TotalPages)
		}
		out = p
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return ToolResult{}, fmt.Errorf("encoding view: %w", err)
	}
	return textResult(string(jsonBytes)), nil
}

func (e *Editor) renderReportTool() Tool {
	return Tool{
		Name:        "render_report",
		Description: "Render the report and invoice as a PDF. Returns the PDF as base64 unless outputPath is given.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
		},
		Handler: e.handleRenderReport,
	}
}

func (e *Editor) handleRenderReport(args map[string]any) (ToolResult, error) {
	var buf bytes.Buffer
	res, err := render.Render(&buf, pagination.Build(e.Session.Document(), e.ViewOptions...), e.RenderOptions...)
	if err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}
	summary := fmt.Sprintf("PDF rendered: %d pages, %d bytes", res.Pages, buf.Len())
	if len(res.Overflow) > 0 {
		summary += fmt.Sprintf(", overflow %v", res.Overflow)
	}

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return textResult(fmt.Sprintf("%s, saved to %s", summary, outputPath)), nil
	}

	return ToolResult{
		Content: []ContentBlock{
			{Type: "text", Text: summary},
			{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(buf.Bytes())},
		},
	}, nil
}

func textResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}
