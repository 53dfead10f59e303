package server

import (
	"github.com/labstack/echo/v4"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/render"
)

// App holds the shared dependencies of every handler
type App struct {
	Store  *db.DB
	Links  *links.Service
	Render render.Options
}

// AppContext is the echo context handed to every handler
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps each request context in an AppContext
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{Context: c, App: app})
		}
	}
}
