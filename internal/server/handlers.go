package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rionatty/ampower-visualize/internal/db"
	"github.com/rionatty/ampower-visualize/internal/graph"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/logger"
	"github.com/rionatty/ampower-visualize/internal/render"
)

type documentParams struct {
	Doctype string `param:"doctype" validate:"required"`
	Name    string `param:"name" validate:"required"`
}

type statsParams struct {
	Doctype      string `param:"doctype" validate:"required"`
	Name         string `param:"name" validate:"required"`
	HubThreshold int    `query:"hub_threshold" validate:"omitempty,min=1"`
	TopN         int    `query:"top_n" validate:"omitempty,min=1,max=1000"`
}

type searchParams struct {
	Doctype string `param:"doctype" validate:"required"`
	Query   string `query:"q"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type documentSummary struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

var badRequest = links.NoticeFor(graph.ErrEmptyInput)

// statusFor maps a traversal error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, links.ErrUnsupportedDocumentType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrDocumentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Failed to fetch linked documents", "path", c.Path(), "err", err)
	} else {
		logger.Debug("Graph request rejected", "path", c.Path(), "status", status, "err", err)
	}
	return c.JSON(status, links.NoticeFor(err))
}

func bindDocument(c echo.Context) (*documentParams, error) {
	params := new(documentParams)
	if err := c.Bind(params); err != nil {
		return nil, err
	}
	if err := c.Validate(params); err != nil {
		return nil, err
	}
	return params, nil
}

func GetLinksHandler(c echo.Context) error {
	params, err := bindDocument(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}

	app := c.(*AppContext).App
	resp, err := app.Links.Links(c.Request().Context(), params.Doctype, params.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func GetGraphHandler(c echo.Context) error {
	params, err := bindDocument(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}

	app := c.(*AppContext).App
	g, err := app.Links.Graph(c.Request().Context(), params.Doctype, params.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func GetViewHandler(c echo.Context) error {
	params, err := bindDocument(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}

	app := c.(*AppContext).App
	g, err := app.Links.Graph(c.Request().Context(), params.Doctype, params.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, render.NewView(g, app.Render.BaseURL))
}

func GetStatsHandler(c echo.Context) error {
	params := new(statsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}
	if params.HubThreshold == 0 {
		params.HubThreshold = 5
	}
	if params.TopN == 0 {
		params.TopN = 10
	}

	app := c.(*AppContext).App
	g, err := app.Links.Graph(c.Request().Context(), params.Doctype, params.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	report := graph.ComputeTopology(graph.NewSnapshot(g), params.HubThreshold, params.TopN)
	return c.JSON(http.StatusOK, report)
}

func GetDoctypesHandler(c echo.Context) error {
	app := c.(*AppContext).App
	return c.JSON(http.StatusOK, app.Links.Registry().Doctypes())
}

func SearchDocumentsHandler(c echo.Context) error {
	params := new(searchParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	app := c.(*AppContext).App
	docs, err := app.Store.SearchByNamePrefix(c.Request().Context(), params.Doctype, params.Query, params.Limit)
	if err != nil {
		return errorResponse(c, err)
	}

	res := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		res = append(res, documentSummary{Name: d.Name, Status: d.Status})
	}
	return c.JSON(http.StatusOK, res)
}

func GraphPageHandler(c echo.Context) error {
	params, err := bindDocument(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, badRequest)
	}

	app := c.(*AppContext).App
	g, err := app.Links.Graph(c.Request().Context(), params.Doctype, params.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	page, err := render.RenderHTML(g, app.Render)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func IndexPageHandler(c echo.Context) error {
	app := c.(*AppContext).App
	opts := app.Render
	opts.Doctypes = app.Links.Registry().Doctypes()
	page, err := render.RenderIndex(opts)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}
