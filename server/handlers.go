package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	auditreport "github.com/kakehashi-asia/auditreport"
	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/logo"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
	"github.com/kakehashi-asia/auditreport/session"
)

type handler struct {
	sess       *session.Session
	viewOpts   []pagination.Option
	renderOpts []render.Option
	maxBody    int64
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type fieldUpdate struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type insertResponse struct {
	ID string `json:"id"`
}

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, auditreport.ErrNotFound),
		errors.Is(err, auditreport.ErrIndexOutOfRange),
		errors.Is(err, auditreport.ErrUnknownList):
		return http.StatusNotFound
	case errors.Is(err, auditreport.ErrUnknownField),
		errors.Is(err, auditreport.ErrFixedList),
		errors.Is(err, auditreport.ErrInvalidValue),
		errors.Is(err, auditreport.ErrDuplicateID),
		errors.Is(err, auditreport.ErrInvalidImage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code := auditreport.Code(err)
	if status == http.StatusBadRequest {
		code = "BadRequest"
	}
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", code).Msg("request rejected")
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error(), Code: code})
}

func (h *handler) writeDocument(w http.ResponseWriter, r *http.Request, status int) {
	doc, rev := h.sess.Snapshot()
	w.Header().Set("X-Revision", strconv.FormatUint(rev, 10))
	writeJSON(w, r, status, doc)
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		return nil, errors.Join(errBadRequest, err)
	}
	return body, nil
}

func (h *handler) getDocument(w http.ResponseWriter, r *http.Request) {
	h.writeDocument(w, r, http.StatusOK)
}

// putDocument replaces the whole document. YAML is accepted with a YAML
// content type, JSON otherwise.
func (h *handler) putDocument(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := document.FormatJSON
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/yaml" || mt == "application/x-yaml" {
		format = document.FormatYAML
	}

	doc, err := document.Decode(bytes.NewReader(body), format)
	if err != nil {
		if !errors.Is(err, auditreport.ErrInvalidValue) && !errors.Is(err, auditreport.ErrDuplicateID) {
			err = errors.Join(errBadRequest, err)
		}
		writeError(w, r, err)
		return
	}
	if err := h.sess.Replace(doc); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeDocument(w, r, http.StatusOK)
}

func (h *handler) updateField(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req fieldUpdate
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, errors.Join(errBadRequest, err))
		return
	}
	if _, err := h.sess.Update(req.Path, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeDocument(w, r, http.StatusOK)
}

// insertEntry appends an entity to a list. An empty body inserts the list's
// blank template.
func (h *handler) insertEntry(w http.ResponseWriter, r *http.Request) {
	list := document.ListName(chi.URLParam(r, "list"))
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var entity map[string]any
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &entity); err != nil {
			writeError(w, r, errors.Join(errBadRequest, err))
			return
		}
	}

	var id string
	if entity == nil {
		id, err = h.sess.Insert(list, nil)
	} else {
		id, err = h.sess.Insert(list, entity)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, insertResponse{ID: id})
}

func (h *handler) removeAt(w http.ResponseWriter, r *http.Request) {
	list := document.ListName(chi.URLParam(r, "list"))
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, errors.Join(errBadRequest, err))
		return
	}
	if err := h.sess.RemoveAt(list, index); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) removeByID(w http.ResponseWriter, r *http.Request) {
	list := document.ListName(chi.URLParam(r, "list"))
	if err := h.sess.RemoveByID(list, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setLogo stores the raw request body as the invoice logo.
func (h *handler) setLogo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, logo.MaxSize+1))
	if err != nil {
		writeError(w, r, auditreport.Errorf("SetLogo", auditreport.ErrInvalidImage, "%v", err))
		return
	}
	if len(body) == 0 {
		writeError(w, r, auditreport.Errorf("SetLogo", auditreport.ErrInvalidImage, "empty body"))
		return
	}
	if err := h.sess.SetLogo(body); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.SetLogo(nil); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, pagination.Build(h.sess.Document(), h.viewOpts...))
}

func (h *handler) getPages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, pagination.Pages())
}

// getReport renders the current snapshot. The PDF is buffered so that a
// failed render still yields a JSON error.
func (h *handler) getReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	doc, rev := h.sess.Snapshot()

	opts := append([]render.Option{render.WithLogger(*logger)}, h.renderOpts...)
	var buf bytes.Buffer
	res, err := render.Render(&buf, pagination.Build(doc, h.viewOpts...), opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="report.pdf"`)
	w.Header().Set("X-Revision", strconv.FormatUint(rev, 10))
	w.Header().Set("X-Pages", strconv.Itoa(res.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}
