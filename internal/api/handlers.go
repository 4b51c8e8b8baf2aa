package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// SubmitNote handles POST /api/notes.
//
//	@Summary		Render a note and set it as the wallpaper
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubmitNoteRequest	true	"Note text"
//	@Success		201		{object}	OutcomeResponse
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) SubmitNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SubmitNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	out, err := h.svc.Submit(r.Context(), req.Text)
	if err != nil {
		switch {
		case apperr.IsUserError(err):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrRenderFailure):
			slog.Error("render failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
		default:
			slog.Error("submit note failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, newOutcomeResponse(out))
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List logged notes, newest first
//	@Tags			notes
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.svc.ListNotes(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list notes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: items, Total: total})
}

// LatestNote handles GET /api/notes/latest.
//
//	@Summary		Get the most recently logged note
//	@Tags			notes
//	@Produce		json
//	@Success		200		{object}	models.Entry
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/latest [get]
func (h *Handler) LatestNote(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.LatestNote(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("no notes logged yet"))
		} else {
			slog.Error("latest note failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ReadLog handles GET /api/log.
//
//	@Summary		Get the raw note log
//	@Tags			log
//	@Produce		plain
//	@Success		200		{string}	string
//	@Security		BearerAuth
//	@Router			/log [get]
func (h *Handler) ReadLog(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.svc.ReadLog(r.Context()))
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across logged notes
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
