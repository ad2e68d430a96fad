package http

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/game"
	"github.com/iamasit07/connect4-cpu/backend/pkg/httputil"
)

// GameService is what the handlers need from the game service.
type GameService interface {
	CreateSession(ctx context.Context, opts game.CreateOptions) (domain.GameSession, error)
	GetSession(ctx context.Context, gameID string) (domain.GameSession, error)
	ApplyMove(ctx context.Context, gameID string, column int, side domain.PlayerID) (domain.GameSession, error)
	ApplyOpponentMove(ctx context.Context, gameID string) (domain.GameSession, error)
	Reset(ctx context.Context, gameID string) (domain.GameSession, error)
	GetActiveGames() []game.GameSummary
}

type GameHandler struct {
	Games        GameService
	IsProduction bool
}

func NewGameHandler(games GameService, isProduction bool) *GameHandler {
	return &GameHandler{Games: games, IsProduction: isProduction}
}

type createRequest struct {
	Opponent string `json:"opponent"`
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

type moveRequest struct {
	GameID string `json:"gameId"`
	Column *int   `json:"column"`
	Player *int   `json:"player"`
}

// Create handles POST /api/game
func (h *GameHandler) Create(c *gin.Context) {
	// the body is optional
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "Invalid request body")
		return
	}

	gs, err := h.Games.CreateSession(c.Request.Context(), game.CreateOptions{Opponent: strings.TrimSpace(req.Opponent)})
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.SetGameCookie(c.Writer, gs.ID, h.IsProduction)
	respondGame(c, gs)
}

// Get handles GET /api/game?gameId=
func (h *GameHandler) Get(c *gin.Context) {
	gameID, err := httputil.GetGameIDFromRequest(c.Request)
	if err != nil {
		respondBadRequest(c, "Game ID is required")
		return
	}

	gs, err := h.Games.GetSession(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondGame(c, gs)
}

// Move handles POST /api/game/move. player defaults to the human side.
func (h *GameHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}
	if req.GameID == "" {
		respondBadRequest(c, "Game ID is required")
		return
	}
	if req.Column == nil {
		respondBadRequest(c, "Column is required")
		return
	}

	side := domain.HumanPlayer
	if req.Player != nil {
		side = domain.PlayerID(*req.Player)
	}

	gs, err := h.Games.ApplyMove(c.Request.Context(), req.GameID, *req.Column, side)
	if err != nil {
		respondError(c, err)
		return
	}
	respondGame(c, gs)
}

// OpponentMove handles POST /api/game/cpu-move
func (h *GameHandler) OpponentMove(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}

	gs, err := h.Games.ApplyOpponentMove(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondGame(c, gs)
}

// Reset handles POST /api/game/reset
func (h *GameHandler) Reset(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}

	gs, err := h.Games.Reset(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondGame(c, gs)
}

func bindGameID(c *gin.Context) (string, bool) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return "", false
	}
	if req.GameID == "" {
		respondBadRequest(c, "Game ID is required")
		return "", false
	}
	return req.GameID, true
}
