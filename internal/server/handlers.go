package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/export"
	"github.com/buffos/go-narrative/internal/page"
	"github.com/buffos/go-narrative/internal/scene"
	"github.com/buffos/go-narrative/internal/slides"
)

// TooltipResponse is the body of the tooltip endpoint.
type TooltipResponse struct {
	Slide    int     `json:"slide"`
	Group    string  `json:"group"`
	Subgroup string  `json:"subgroup"`
	Value    float64 `json:"value"`
	Text     string  `json:"text"`
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/slides/1")
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handlePage(c echo.Context) error {
	n, err := slideParam(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	_, err = s.controller.Show(c.Request().Context(), n, func(st slides.State, container *scene.Container) error {
		return page.Render(&buf, st, container, page.Options{NavHref: slideHref})
	})
	if slides.IsUnrecognizedSlide(err) {
		return mapError(err)
	}
	status := http.StatusOK
	if err != nil {
		status = mapError(err).Code
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (s *Server) handleChart(c echo.Context) error {
	n, err := slideParam(c)
	if err != nil {
		return err
	}
	name, ext, ok := strings.Cut(c.Param("file"), ".")
	if !ok || name != "chart" {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	format, err := export.ParseFormat(ext)
	if err != nil || format == export.HTML || (format.Raster() && s.raster == nil) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	ctx := c.Request().Context()
	var buf bytes.Buffer
	_, err = s.controller.Show(ctx, n, func(_ slides.State, container *scene.Container) error {
		surface, err := container.Surface()
		if err != nil {
			return err
		}
		if format == export.SVG {
			return surface.WriteSVG(&buf, scene.WriteOptions{Standalone: true})
		}
		return s.raster.Write(ctx, surface, format, &buf)
	})
	if err != nil {
		return mapError(err)
	}

	contentType := "image/svg+xml"
	switch format {
	case export.PNG:
		contentType = "image/png"
	case export.JPEG:
		contentType = "image/jpeg"
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) handleTooltip(c echo.Context) error {
	n, err := slideParam(c)
	if err != nil {
		return err
	}
	group, subgroup := c.QueryParam("group"), c.QueryParam("subgroup")
	if group == "" || subgroup == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "group and subgroup are required")
	}

	var resp *TooltipResponse
	_, err = s.controller.Show(c.Request().Context(), n, func(st slides.State, _ *scene.Container) error {
		if st.Render == nil {
			return nil
		}
		if bar, ok := st.Render.Bar(group, subgroup); ok {
			resp = &TooltipResponse{Slide: n, Group: bar.Group, Subgroup: bar.Subgroup, Value: bar.Value, Text: bar.Tooltip}
		}
		return nil
	})
	if err != nil {
		return mapError(err)
	}
	if resp == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no bar for %s / %s", group, subgroup))
	}
	return c.JSON(http.StatusOK, resp)
}

func slideParam(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "slide must be a number")
	}
	return n, nil
}

func slideHref(n int) string {
	return fmt.Sprintf("/slides/%d", n)
}

// mapError converts a render error into an appropriate echo.HTTPError.
func mapError(err error) *echo.HTTPError {
	var (
		loadErr   *dataset.DataLoadError
		domainErr *dataset.InconsistentDomainError
	)
	switch {
	case slides.IsUnrecognizedSlide(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &loadErr):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.As(err, &domainErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
