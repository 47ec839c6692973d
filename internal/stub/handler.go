package stub

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/logger"
	"github.com/MikhailRaia/url-shortener-client/internal/model"
)

// Handler serves the shortener backend contract from an in-memory Store.
type Handler struct {
	store   *Store
	baseURL string
}

// NewHandler creates a Handler that builds short URLs on top of baseURL.
func NewHandler(store *Store, baseURL string) *Handler {
	return &Handler{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(logger.RequestLogger)

	r.Post("/api/shorten", h.handleShorten)
	r.Get("/api/expand/{code}", h.handleExpand)
	r.Get("/{code}", h.handleRedirect)

	return r
}

func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	var request model.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || !isWebURL(request.OriginalURL) {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	code, err := h.store.Save(request.OriginalURL)
	if err != nil {
		log.Error().Err(err).Str("url", request.OriginalURL).Msg("Failed to save URL")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.ShortenResponse{ShortURL: h.baseURL + "/" + code})
}

func (h *Handler) handleExpand(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	originalURL, ok := h.store.Get(code)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, model.ExpandResponse{OriginalURL: originalURL})
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	originalURL, ok := h.store.Get(code)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusFound)
}

func isWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
