// Package server exposes the narrative over HTTP: one page per slide, the
// chart on its own, tooltip lookups and operational endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/buffos/go-narrative/internal/export"
	"github.com/buffos/go-narrative/internal/scene"
	"github.com/buffos/go-narrative/internal/slides"
)

// Rasterizer renders a surface to PNG or JPEG.
type Rasterizer interface {
	Write(ctx context.Context, s *scene.Surface, format export.Format, w io.Writer) error
}

// Server wires the slide controller into an echo instance.
type Server struct {
	echo       *echo.Echo
	controller *slides.Controller
	raster     Rasterizer
	logger     *zap.Logger
}

// New builds the routes. raster may be nil, in which case image routes
// answer 404.
func New(controller *slides.Controller, raster Rasterizer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		echo:       echo.New(),
		controller: controller,
		raster:     raster,
		logger:     logger,
	}
	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/", s.handleIndex)
	e.GET("/slides/:n", s.handlePage)
	e.GET("/slides/:n/tooltip", s.handleTooltip)
	e.GET("/slides/:n/:file", s.handleChart)
	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on address until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	s.logger.Info("starting narrative server", zap.String("address", address))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	s.logger.Info("server exited properly")
	return nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
			}
			if v.Error == nil {
				logger.Info("request completed", fields...)
			} else {
				logger.Error("request failed", append(fields, zap.Error(v.Error))...)
			}
			return nil
		},
	})
}
