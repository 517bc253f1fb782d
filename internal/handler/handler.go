package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/answerkey/internal/convert"
	"github.com/pavelanni/answerkey/internal/library"
	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/parse"
	"github.com/pavelanni/answerkey/internal/render"
)

var contentTypes = map[model.Format]string{
	model.FormatJSON: "application/json; charset=utf-8",
	model.FormatYAML: "application/yaml; charset=utf-8",
	model.FormatHTML: "text/html; charset=utf-8",
	model.FormatPDF:  "application/pdf",
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	lib      *library.Library
	renderer *render.Renderer
}

// New creates a new Handler.
func New(lib *library.Library, r *render.Renderer) *Handler {
	return &Handler{lib: lib, renderer: r}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/papers/{paperID}", h.handlePaper)
	r.Get("/papers/{paperID}/{format}", h.handleExport)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	papers, err := h.lib.Papers()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[model.FormatHTML])
	if err := h.renderer.IndexComponent(papers).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handlePaper(w http.ResponseWriter, r *http.Request) {
	p, err := h.lib.Find(chi.URLParam(r, "paperID"))
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.lib.Answers(r.Context(), p, false)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[model.FormatHTML])
	if err := h.renderer.Component(p, a).Render(r.Context(), w); err != nil {
		slog.Error("render error", "paper", p.ID, "error", err)
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	f, ok := model.ParseFormat(chi.URLParam(r, "format"))
	if !ok {
		http.Error(w, "unknown format", http.StatusNotFound)
		return
	}
	p, err := h.lib.Find(chi.URLParam(r, "paperID"))
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.lib.Export(r.Context(), f, p, "", false)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	if f != model.FormatHTML {
		w.Header().Set("Content-Disposition", `inline; filename="`+p.ID+"."+string(f)+`"`)
	}
	if _, err := w.Write(data); err != nil {
		slog.Error("write response", "paper", p.ID, "format", f, "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, library.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, parse.ErrIO), errors.Is(err, parse.ErrSyntax),
		errors.Is(err, parse.ErrFieldMissing), errors.Is(err, parse.ErrTypeMismatch),
		errors.Is(err, parse.ErrMissingData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, convert.ErrConversion):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	} else {
		slog.Warn("request failed", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}
