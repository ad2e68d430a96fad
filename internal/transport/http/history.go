package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
	"github.com/iamasit07/connect4-cpu/backend/pkg/httputil"
)

// HistoryReader lists archived rounds of one game, oldest round first.
type HistoryReader interface {
	ListResults(ctx context.Context, gameID string) ([]domain.RoundResult, error)
}

// StatsReader returns the global counters over every finished round.
type StatsReader interface {
	Totals(ctx context.Context) (domain.ResultTotals, error)
}

var errArchiveDisabled = errors.New("round archive is not configured")

type HistoryHandler struct {
	Games   GameService
	Archive HistoryReader
	Stats   StatsReader
}

func NewHistoryHandler(games GameService, archive HistoryReader, stats StatsReader) *HistoryHandler {
	return &HistoryHandler{Games: games, Archive: archive, Stats: stats}
}

// GetHistory handles GET /api/game/history?gameId=
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   errArchiveDisabled.Error(),
			"kind":    domain.KindNotFound,
		})
		return
	}

	gameID, err := httputil.GetGameIDFromRequest(c.Request)
	if err != nil {
		respondBadRequest(c, "Game ID is required")
		return
	}

	results, err := h.Archive.ListResults(c.Request.Context(), gameID)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history for game %s: %v", gameID, err)
		respondError(c, err)
		return
	}

	// a live game with nothing archived yet is an empty history, not a missing one
	if len(results) == 0 {
		if _, err := h.Games.GetSession(c.Request.Context(), gameID); err != nil {
			respondError(c, err)
			return
		}
	}

	respondData(c, gin.H{"gameId": gameID, "rounds": results})
}

// GetStats handles GET /api/stats
func (h *HistoryHandler) GetStats(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "stats are disabled",
			"kind":    domain.KindInternal,
		})
		return
	}

	totals, err := h.Stats.Totals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, totals)
}
