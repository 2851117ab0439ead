package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nyc_rent_dashboard/internal/adapters/xlsx"
	"nyc_rent_dashboard/internal/app"
	"nyc_rent_dashboard/internal/charts"
	"nyc_rent_dashboard/internal/ui"
)

const maxCallbackBody = 64 << 10

type Handlers struct {
	D   *app.Dashboard
	Svc *app.CallbackService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type callbackRequest struct {
	Value []string `json:"value"`
}

type callbackResponse struct {
	Outputs map[string]charts.Figure `json:"outputs"`
}

type staticChart struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Figure charts.Figure `json:"figure"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(ui.Assets()))))
	s.mux.Get("/v1/layout", h.layout)
	s.mux.Post("/v1/callbacks/{input}", h.callback)
	s.mux.Get("/v1/charts/static", h.staticCharts)
	s.mux.Get("/v1/exports/static.xlsx", h.exportStatic)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCachedJSON answers 304 when the client already holds this version.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any, name string) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write " + name + " body")
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := ui.Render(&buf, h.D.Page()); err != nil {
		log.Error().Err(err).Msg("render page failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write index body")
	}
}

func (h *Handlers) layout(w http.ResponseWriter, r *http.Request) {
	writeCachedJSON(w, r, h.D.Layout(), "layout")
}

func (h *Handlers) callback(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "input")

	var req callbackRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxCallbackBody))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", `body must be {"value":[...]}`)
		return
	}

	out, err := h.Svc.Dispatch(r.Context(), input, req.Value)
	switch {
	case errors.Is(err, app.ErrUnknownCallback):
		writeProblem(w, http.StatusNotFound, "Not Found", "no callback for input "+input)
		return
	case err != nil:
		log.Error().Err(err).Str("input", input).Msg("callback failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "callback failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(callbackResponse{Outputs: out}); err != nil {
		log.Error().Err(err).Msg("failed to write callback body")
	}
}

func (h *Handlers) staticCharts(w http.ResponseWriter, r *http.Request) {
	static := h.D.Static()
	out := make([]staticChart, 0, len(static))
	for _, c := range static {
		out = append(out, staticChart{ID: c.ID, Name: c.Name, Figure: c.Chart.Plotly()})
	}
	writeCachedJSON(w, r, out, "static charts")
}

func (h *Handlers) exportStatic(w http.ResponseWriter, r *http.Request) {
	static := h.D.Static()
	sheets := make([]xlsx.Sheet, 0, len(static))
	for _, c := range static {
		sheets = append(sheets, xlsx.Sheet{Name: c.Name, Summary: c.Summary})
	}
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, sheets); err != nil {
		log.Error().Err(err).Msg("xlsx export failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="static.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write export body")
	}
}
