package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chessdb/chessdb/internal/api/apierr"
	"github.com/chessdb/chessdb/internal/api/request"
	"github.com/chessdb/chessdb/internal/api/response"
	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/services/player"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	controller player.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller player.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// AddOrUpdate handles PUT /api/v1/players
func (h *PlayerHandler) AddOrUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.AddOrUpdatePlayer(r.Context(), req.ID, req.Rating.String())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.controller.GetPlayer(r.Context(), model.PlayerID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{id}. Every game the player took
// part in is removed as well.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.controller.DeletePlayer(r.Context(), model.PlayerID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
