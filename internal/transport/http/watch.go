package http

import (
	"github.com/gin-gonic/gin"
)

type WatchHandler struct {
	Games GameService
}

func NewWatchHandler(games GameService) *WatchHandler {
	return &WatchHandler{Games: games}
}

// GetLiveGames returns every game that is still being played
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	respondData(c, h.Games.GetActiveGames())
}
