package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const contextKey = "session.id"

// Cfg contains session cookie settings
type Cfg struct {
	CookieName string
	TimeToLive time.Duration
	Secure     bool
}

// Middleware makes sure every request carries session id cookie.
// Missing or malformed ids are replaced with a new one.
func Middleware(cfg Cfg) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
			}

			// refresh expiration on every request
			c.SetCookie(&http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.TimeToLive.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			c.Set(contextKey, id)
			return next(c)
		}
	}
}

// ID returns session id of the request, empty if middleware wasn't applied
func ID(c echo.Context) string {
	id, _ := c.Get(contextKey).(string)
	return id
}
