package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/cache"
	"github.com/dharmasatrya/flightscanner/internal/models"
	"github.com/dharmasatrya/flightscanner/internal/orchestrator"
)

// Server exposes the orchestrator over HTTP for callers that prefer a
// long-running service to the one-shot CLI.
type Server struct {
	echo   *echo.Echo
	orch   *orchestrator.Orchestrator
	cache  cache.Cache
	logger *zap.Logger
}

func New(orch *orchestrator.Orchestrator, c cache.Cache, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	s := &Server{
		echo:   e,
		orch:   orch,
		cache:  c,
		logger: logger,
	}

	api := e.Group("/api/v1")
	api.POST("/flights/search", s.Search)
	e.GET("/health", s.Health)

	return s
}

func (s *Server) Start(port string) error {
	return s.echo.Start(":" + port)
}

func (s *Server) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if cached, found := s.cache.Get(ctx, req); found {
		return c.JSON(http.StatusOK, cached)
	}

	report, err := s.orch.Search(ctx, req)
	if err != nil {
		var verr models.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search flights: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if report.Status == models.StatusCompleted {
		if err := s.cache.Set(ctx, req, report); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, report)
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
