package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/session"
)

func newTestServer(t *testing.T) (*Server, *session.Session) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	sess := session.New(nil, session.WithLogger(logger))
	e := &Editor{Session: sess}

	s := NewServerWithIO(nil, nil, WithLogger(logger))
	RegisterTools(s, e)
	RegisterResources(s, e)
	return s, sess
}

func sendRequest(t *testing.T, s *Server, method string, id int, params any) jsonrpcResponse {
	t.Helper()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}

	reqBytes, err := json.Marshal(req)
	require.NoError(t, err)
	reqBytes = append(reqBytes, '\n')

	var output bytes.Buffer
	s.input = bytes.NewReader(reqBytes)
	s.output = &output

	require.NoError(t, s.Run(context.Background()))

	var resp jsonrpcResponse
	require.NoError(t, json.Unmarshal(output.Bytes(), &resp), "response %q", output.String())
	return resp
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) ToolResult {
	t.Helper()

	resp := sendRequest(t, s, "tools/call", 1, map[string]any{
		"name":      name,
		"arguments": args,
	})
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result ToolResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.NotEmpty(t, result.Content)
	return result
}

func TestServerInitialize(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "initialize", 1, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok, "result is not a map")
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	serverInfo, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok, "missing serverInfo")
	assert.Equal(t, "auditreport-mcp", serverInfo["name"])
}

func TestServerToolsList(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "tools/list", 2, nil)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]any)
	tools, ok := result["tools"].([]any)
	require.True(t, ok, "tools is not an array")

	var names []string
	for _, tool := range tools {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{
		"get_document", "update_field", "insert_entry", "remove_entry",
		"set_logo", "get_view", "render_report",
	}, names)
}

func TestServerResourcesList(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "resources/list", 3, nil)
	require.Nil(t, resp.Error)

	resources := resp.Result.(map[string]any)["resources"].([]any)
	require.Len(t, resources, 3)
	assert.Equal(t, "report://document", resources[0].(map[string]any)["uri"])
}

func TestServerPing(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "ping", 4, nil)
	assert.Nil(t, resp.Error)
}

func TestServerUnknownMethod(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "nonexistent/method", 5, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestServerNotificationHasNoResponse(t *testing.T) {
	s, _ := newTestServer(t)

	var output bytes.Buffer
	s.input = strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","method":"notifications/cancelled"}` + "\n")
	s.output = &output

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, output.String())
}

func TestServerParseError(t *testing.T) {
	s, _ := newTestServer(t)

	var output bytes.Buffer
	s.input = strings.NewReader("{not json\n")
	s.output = &output

	require.NoError(t, s.Run(context.Background()))
	var resp jsonrpcResponse
	require.NoError(t, json.Unmarshal(output.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeParseError, resp.Error.Code)
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	s.input = strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	s.output = &bytes.Buffer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestServerUnknownTool(t *testing.T) {
	s, _ := newTestServer(t)

	resp := sendRequest(t, s, "tools/call", 6, map[string]any{
		"name":      "nonexistent_tool",
		"arguments": map[string]any{},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidParams, resp.Error.Code)
}

func TestGetDocumentTool(t *testing.T) {
	s, _ := newTestServer(t)

	result := callTool(t, s, "get_document", map[string]any{})
	assert.False(t, result.IsError)
	text := result.Content[0].Text
	require.True(t, strings.HasPrefix(text, "Revision 0\n"))

	doc, err := document.Decode(strings.NewReader(strings.TrimPrefix(text, "Revision 0\n")), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, document.Default(), doc)

	result = callTool(t, s, "get_document", map[string]any{"format": "yaml"})
	assert.Contains(t, result.Content[0].Text, "clientName:")
}

func TestUpdateFieldTool(t *testing.T) {
	s, sess := newTestServer(t)

	result := callTool(t, s, "update_field", map[string]any{
		"path":  "invoice.items[1].quantity",
		"value": "4",
	})
	assert.False(t, result.IsError)
	assert.Equal(t, "Updated invoice.items[1].quantity (revision 1)", result.Content[0].Text)
	assert.Equal(t, 4, sess.Document().Invoice.Items[0].Quantity)
}

func TestToolErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{"invalid number", "update_field", map[string]any{"path": "invoice.taxRatePercent", "value": "ten"}, "InvalidNumericInput"},
		{"unknown field", "update_field", map[string]any{"path": "meta.nope", "value": "x"}, "UnknownField"},
		{"item by position", "update_field", map[string]any{"path": "invoice.items[0].quantity", "value": "4"}, "NotFound"},
		{"non-finite price", "update_field", map[string]any{"path": "invoice.items[1].unitPrice", "value": "NaN"}, "InvalidNumericInput"},
		{"fixed list", "insert_entry", map[string]any{"list": "evidence"}, "FixedList"},
		{"unknown list", "insert_entry", map[string]any{"list": "threatStats"}, "UnknownList"},
		{"index out of range", "remove_entry", map[string]any{"list": "news", "index": 7}, "IndexOutOfRange"},
		{"fractional index", "remove_entry", map[string]any{"list": "news", "index": 1.5}, "InvalidNumericInput"},
		{"unknown id", "remove_entry", map[string]any{"list": "news", "id": "zzz"}, "NotFound"},
		{"bad base64", "set_logo", map[string]any{"data": "%%%"}, "InvalidImage"},
		{"not an image", "set_logo", map[string]any{"data": base64.StdEncoding.EncodeToString([]byte("hello"))}, "InvalidImage"},
		{"missing list", "remove_entry", map[string]any{}, "Internal"},
		{"page out of range", "get_view", map[string]any{"page": 12}, "IndexOutOfRange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sess := newTestServer(t)
			before := sess.Document()

			result := callTool(t, s, tt.tool, tt.args)
			assert.True(t, result.IsError)
			assert.True(t, strings.HasPrefix(result.Content[0].Text, "Error ["+tt.code+"]"), result.Content[0].Text)
			assert.Same(t, before, sess.Document())
			assert.Zero(t, sess.Revision())
		})
	}
}

func TestInsertAndRemoveTools(t *testing.T) {
	s, sess := newTestServer(t)
	n := len(sess.Document().Assets)

	result := callTool(t, s, "insert_entry", map[string]any{"list": "assets"})
	assert.Equal(t, "Inserted MOB-003 into assets", result.Content[0].Text)
	assert.Len(t, sess.Document().Assets, n+1)

	result = callTool(t, s, "insert_entry", map[string]any{
		"list":   "invoice.items",
		"entity": map[string]any{"description": "Extra hours", "quantity": 2, "unitPrice": 80},
	})
	assert.False(t, result.IsError)
	items := sess.Document().Invoice.Items
	assert.Equal(t, "Extra hours", items[len(items)-1].Description)

	result = callTool(t, s, "remove_entry", map[string]any{"list": "assets", "id": "MOB-003"})
	assert.Equal(t, "Removed MOB-003 from assets", result.Content[0].Text)
	assert.Len(t, sess.Document().Assets, n)

	result = callTool(t, s, "remove_entry", map[string]any{"list": "assets", "index": 0})
	assert.Equal(t, "Removed entry 0 from assets", result.Content[0].Text)
	assert.Equal(t, "WEB-01", sess.Document().Assets[0].ID)
}

func TestSetLogoTool(t *testing.T) {
	s, sess := newTestServer(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 4, 4))))

	result := callTool(t, s, "set_logo", map[string]any{"data": base64.StdEncoding.EncodeToString(img.Bytes())})
	assert.False(t, result.IsError)
	assert.True(t, strings.HasPrefix(sess.Document().Invoice.LogoSrc, "data:image/png;base64,"))

	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, img.Bytes(), 0o644))
	result = callTool(t, s, "set_logo", map[string]any{"path": path})
	assert.False(t, result.IsError)

	result = callTool(t, s, "set_logo", map[string]any{})
	assert.Equal(t, "Logo cleared", result.Content[0].Text)
	assert.Empty(t, sess.Document().Invoice.LogoSrc)
}

func TestGetViewTool(t *testing.T) {
	s, _ := newTestServer(t)

	result := callTool(t, s, "get_view", map[string]any{})
	var v pagination.View
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &v))
	assert.Equal(t, pagination.TotalPages, v.TotalPages)
	assert.Equal(t, "$4,840.00", v.Invoice.Total)

	result = callTool(t, s, "get_view", map[string]any{"page": 11})
	var p pagination.Page
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &p))
	assert.Equal(t, 11, p.Number)
}

func TestRenderReportTool(t *testing.T) {
	s, _ := newTestServer(t)

	result := callTool(t, s, "render_report", map[string]any{})
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)
	assert.True(t, strings.HasPrefix(result.Content[0].Text, "PDF rendered: 11 pages, "), result.Content[0].Text)
	assert.Equal(t, "application/pdf", result.Content[1].MIMEType)

	data, err := base64.StdEncoding.DecodeString(result.Content[1].Data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	path := filepath.Join(t.TempDir(), "report.pdf")
	result = callTool(t, s, "render_report", map[string]any{"outputPath": path})
	assert.Contains(t, result.Content[0].Text, "saved to "+path)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestResourcesRead(t *testing.T) {
	s, sess := newTestServer(t)
	_, err := sess.Update("meta.clientName", "Resource Corp")
	require.NoError(t, err)

	read := func(uri string) string {
		resp := sendRequest(t, s, "resources/read", 9, map[string]any{"uri": uri})
		require.Nil(t, resp.Error)
		contents := resp.Result.(map[string]any)["contents"].([]any)
		require.Len(t, contents, 1)
		c := contents[0].(map[string]any)
		assert.Equal(t, uri, c["uri"])
		return c["text"].(string)
	}

	assert.Contains(t, read("report://document"), `"clientName": "Resource Corp"`)

	var v pagination.View
	require.NoError(t, json.Unmarshal([]byte(read("report://view")), &v))
	assert.Equal(t, "Resource Corp", v.Document.Meta.ClientName)

	var pages []pagination.PageSpec
	require.NoError(t, json.Unmarshal([]byte(read("report://pages")), &pages))
	assert.Equal(t, pagination.Pages(), pages)

	resp := sendRequest(t, s, "resources/read", 10, map[string]any{"uri": "report://nope"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidParams, resp.Error.Code)
}
