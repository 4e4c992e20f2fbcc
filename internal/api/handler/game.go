package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chessdb/chessdb/internal/api/apierr"
	"github.com/chessdb/chessdb/internal/api/request"
	"github.com/chessdb/chessdb/internal/api/response"
	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	controller game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller game.ControllerInterface) *GameHandler {
	return &GameHandler{
		controller: controller,
	}
}

// Add handles POST /api/v1/games
func (h *GameHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.controller.AddGame(r.Context(), game.Input{
		ID:              model.GameID(req.ID),
		Rated:           req.Rated,
		CreatedAt:       req.CreatedAt,
		LastMoveAt:      req.LastMoveAt,
		TurnCount:       req.TurnCount,
		VictoryStatus:   req.VictoryStatus,
		Winner:          model.Winner(req.Winner),
		TimeControlCode: model.TimeControlCode(req.TimeControlCode),
		WhiteID:         model.PlayerID(req.WhiteID),
		BlackID:         model.PlayerID(req.BlackID),
		Moves:           req.Moves,
		OpeningName:     model.OpeningName(req.OpeningName),
		OpeningPly:      req.OpeningPly,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	g, err := h.controller.GetGame(r.Context(), model.GameID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.controller.DeleteGame(r.Context(), model.GameID(id)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
