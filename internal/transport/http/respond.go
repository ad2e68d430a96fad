package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

// StatusFor maps an error kind to the HTTP status the client sees.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindTurn, domain.KindExhausted:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type gameResponse struct {
	domain.GameSession
	IsDraw bool `json:"isDraw"`
}

func respondGame(c *gin.Context, gs domain.GameSession) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gameResponse{GameSession: gs, IsDraw: gs.IsDraw()},
	})
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	message := err.Error()
	if kind == domain.KindInternal {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}

	c.JSON(StatusFor(kind), gin.H{
		"success": false,
		"error":   message,
		"kind":    kind,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
		"kind":    domain.KindValidation,
	})
}
