package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/podcast-api/internal/middleware"
)

// actorEmail names the authenticated caller for event payloads; empty when
// the route is unauthenticated.
func actorEmail(c echo.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.Email
	}
	return ""
}
