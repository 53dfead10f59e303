package server

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Pages
	e.GET("/", IndexPageHandler)
	e.GET("/view/:doctype/:name", GraphPageHandler)

	apiRoutes := e.Group("/api")

	// Link traversal routes
	apiRoutes.GET("/links/:doctype/:name", GetLinksHandler)
	apiRoutes.GET("/graph/:doctype/:name", GetGraphHandler)
	apiRoutes.GET("/view/:doctype/:name", GetViewHandler)
	apiRoutes.GET("/stats/:doctype/:name", GetStatsHandler)

	// Document picker routes
	apiRoutes.GET("/doctypes", GetDoctypesHandler)
	apiRoutes.GET("/documents/:doctype", SearchDocumentsHandler)
}
