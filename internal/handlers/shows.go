package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/tmdb"
	"github.com/bkovacev/showtrack/pkg/httputil"
)

// ShowService defines the interface for show search business logic
type ShowService interface {
	Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
}

// ShowHandler proxies TV show searches
type ShowHandler struct {
	service ShowService
}

// NewShowHandler creates a new ShowHandler
func NewShowHandler(service ShowService) *ShowHandler {
	return &ShowHandler{
		service: service,
	}
}

// Search searches TV shows by name
//
// GET /api/serije?q=...&stranica=N
func (h *ShowHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	page := 1
	if raw := r.URL.Query().Get("stranica"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteBadRequest(w, "stranica must be a number")
			return
		}
		page = parsed
	}

	resp, err := h.service.Search(r.Context(), query, page)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			httputil.WriteBadRequest(w, "query must have at least 2 characters")
			return
		}
		httputil.WriteInternalError(w, "failed to fetch shows")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
