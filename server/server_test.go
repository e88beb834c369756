package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/session"
)

func newTestAPI(t *testing.T) (*WebAPI, *session.Session) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	sess := session.New(nil, session.WithLogger(logger))
	return NewWebAPI(logger, sess, Config{Addr: "127.0.0.1:0"}), sess
}

func do(t *testing.T, api *WebAPI, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetDocument(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := do(t, api, http.MethodGet, "/api/v1/document", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Revision"))

	var doc document.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, document.Default(), &doc)
}

func TestUpdateField(t *testing.T) {
	api, sess := newTestAPI(t)

	rec := do(t, api, http.MethodPatch, "/api/v1/document/fields", "application/json",
		[]byte(`{"path":"invoice.taxRatePercent","value":"10"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Revision"))
	assert.Equal(t, 10.0, sess.Document().Invoice.TaxRatePercent)
}

func TestUpdateFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"path":`, http.StatusBadRequest, "BadRequest"},
		{"unknown field", `{"path":"meta.nope","value":"x"}`, http.StatusUnprocessableEntity, "UnknownField"},
		{"not a number", `{"path":"invoice.taxRatePercent","value":"ten"}`, http.StatusUnprocessableEntity, "InvalidNumericInput"},
		{"missing member", `{"path":"assets[NOPE].status","value":"Healthy"}`, http.StatusNotFound, "NotFound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, sess := newTestAPI(t)
			before := sess.Document()

			rec := do(t, api, http.MethodPatch, "/api/v1/document/fields", "application/json", []byte(tt.body))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
			assert.Same(t, before, sess.Document())
			assert.Zero(t, sess.Revision())
		})
	}
}

func TestInsertAndRemove(t *testing.T) {
	api, sess := newTestAPI(t)
	n := len(sess.Document().Assets)

	rec := do(t, api, http.MethodPost, "/api/v1/document/lists/assets", "application/json", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ins insertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	assert.Equal(t, "MOB-003", ins.ID)
	assert.Len(t, sess.Document().Assets, n+1)

	rec = do(t, api, http.MethodPost, "/api/v1/document/lists/invoice.items", "application/json",
		[]byte(`{"description":"Extra hours","quantity":"3","unitPrice":120}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	items := sess.Document().Invoice.Items
	assert.Equal(t, "Extra hours", items[len(items)-1].Description)
	assert.Equal(t, 3, items[len(items)-1].Quantity)

	rec = do(t, api, http.MethodDelete, "/api/v1/document/lists/assets/id/"+ins.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, sess.Document().Assets, n)

	rec = do(t, api, http.MethodDelete, "/api/v1/document/lists/assets/index/0", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, sess.Document().Assets, n-1)
}

func TestListErrors(t *testing.T) {
	tests := []struct {
		name, method, path string
		status             int
		code               string
	}{
		{"index out of range", http.MethodDelete, "/api/v1/document/lists/news/index/7", http.StatusNotFound, "IndexOutOfRange"},
		{"bad index", http.MethodDelete, "/api/v1/document/lists/news/index/x", http.StatusBadRequest, "BadRequest"},
		{"unknown id", http.MethodDelete, "/api/v1/document/lists/news/id/zzz", http.StatusNotFound, "NotFound"},
		{"unknown list", http.MethodPost, "/api/v1/document/lists/threatStats", http.StatusNotFound, "UnknownList"},
		{"fixed list", http.MethodPost, "/api/v1/document/lists/evidence", http.StatusUnprocessableEntity, "FixedList"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, sess := newTestAPI(t)
			rec := do(t, api, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
			assert.Zero(t, sess.Revision())
		})
	}
}

func TestPutDocument(t *testing.T) {
	api, sess := newTestAPI(t)

	doc := document.Default()
	doc.Meta.ClientName = "Replaced Inc."
	var buf bytes.Buffer
	require.NoError(t, document.Encode(&buf, doc, document.FormatYAML))

	rec := do(t, api, http.MethodPut, "/api/v1/document", "application/yaml", buf.Bytes())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Replaced Inc.", sess.Document().Meta.ClientName)

	rec = do(t, api, http.MethodPut, "/api/v1/document", "application/json", []byte(`{"unknown":1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	doc.Invoice.Currency = "EUR"
	buf.Reset()
	require.NoError(t, json.NewEncoder(&buf).Encode(doc))
	rec = do(t, api, http.MethodPut, "/api/v1/document", "application/json", buf.Bytes())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Replaced Inc.", sess.Document().Meta.ClientName)
}

func TestLogo(t *testing.T) {
	api, sess := newTestAPI(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 4, 4))))

	rec := do(t, api, http.MethodPut, "/api/v1/document/logo", "image/png", img.Bytes())
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, strings.HasPrefix(sess.Document().Invoice.LogoSrc, "data:image/png;base64,"))

	rec = do(t, api, http.MethodPut, "/api/v1/document/logo", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "InvalidImage", decodeError(t, rec).Code)

	rec = do(t, api, http.MethodDelete, "/api/v1/document/logo", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, sess.Document().Invoice.LogoSrc)
}

func TestGetView(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := do(t, api, http.MethodGet, "/api/v1/view", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var v pagination.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, pagination.TotalPages, v.TotalPages)
	assert.Len(t, v.Pages, pagination.TotalPages)
	assert.Equal(t, "$4,840.00", v.Invoice.Total)
	assert.Equal(t, 14280, v.Threats.Total)
}

func TestGetPages(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := do(t, api, http.MethodGet, "/api/v1/pages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pages []pagination.PageSpec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pages))
	assert.Equal(t, pagination.Pages(), pages)
}

func TestGetReport(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := do(t, api, http.MethodGet, "/api/v1/report.pdf", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "11", rec.Header().Get("X-Pages"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestStartStopsOnCancel(t *testing.T) {
	api, _ := newTestAPI(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- api.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
