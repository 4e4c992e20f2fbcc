package handler

import (
	"net/http"
	"strconv"

	"github.com/chessdb/chessdb/internal/api/apierr"
	"github.com/chessdb/chessdb/internal/api/response"
	"github.com/chessdb/chessdb/internal/services/listing"
)

// ListingHandler handles the paged collection endpoints
type ListingHandler struct {
	service *listing.Service
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service *listing.Service) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// pageParams reads page and page_size query parameters. Unparseable or
// missing values fall back to the service defaults.
func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

// Players handles GET /api/v1/players
func (h *ListingHandler) Players(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.ListPlayers(r.Context(), page, pageSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PageFromListing(result, response.PlayerFromModel))
}

// TimeControls handles GET /api/v1/time-controls
func (h *ListingHandler) TimeControls(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.ListTimeControls(r.Context(), page, pageSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PageFromListing(result, response.TimeControlFromModel))
}

// Openings handles GET /api/v1/openings
func (h *ListingHandler) Openings(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.ListOpenings(r.Context(), page, pageSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PageFromListing(result, response.OpeningFromModel))
}

// Games handles GET /api/v1/games
func (h *ListingHandler) Games(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.service.ListGames(r.Context(), page, pageSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PageFromListing(result, response.GameFromModel))
}
