package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const GameCookieName = "game_id"

const gameCookieMaxAge = 30 * 24 * time.Hour

// SetGameCookie remembers the caller's current game so a reload can pick it up again.
func SetGameCookie(w http.ResponseWriter, gameID string, isProduction bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName,
		Value:    gameID,
		Path:     "/",
		MaxAge:   int(gameCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isProduction, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

// GetGameIDFromRequest prefers the gameId query parameter and falls back to the cookie.
func GetGameIDFromRequest(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("gameId")); id != "" {
		return id, nil
	}

	cookie, err := r.Cookie(GameCookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.New("no game id in query or cookie")
	}
	return cookie.Value, nil
}
