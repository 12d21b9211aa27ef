package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/buffos/go-narrative/data"
	"github.com/buffos/go-narrative/internal/annotation"
	"github.com/buffos/go-narrative/internal/chart"
	"github.com/buffos/go-narrative/internal/config"
	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/deck"
	"github.com/buffos/go-narrative/internal/export"
	"github.com/buffos/go-narrative/internal/page"
	"github.com/buffos/go-narrative/internal/scene"
	"github.com/buffos/go-narrative/internal/slides"
)

// newSource picks the dataset source: base URL, then directory, then the
// embedded datasets.
func newSource(c *config.Config) dataset.Source {
	switch {
	case c.Data.BaseURL != "":
		return dataset.NewHTTPSource(c.Data.BaseURL, c.Data.Timeout)
	case c.Data.Dir != "":
		return dataset.FSSource{FS: os.DirFS(c.Data.Dir)}
	default:
		return dataset.FSSource{FS: data.FS}
	}
}

func loadDeck(c *config.Config) (*deck.Deck, error) {
	if c.Deck.File == "" {
		return deck.Default(), nil
	}
	return deck.LoadFile(c.Deck.File)
}

// newController wires a controller drawing into its own container.
func newController(c *config.Config, d *deck.Deck, logger *zap.Logger) *slides.Controller {
	renderer := chart.NewRenderer(newSource(c), logger)
	return slides.New(d, renderer, annotation.New(d, logger), scene.NewContainer("chart_div"), logger)
}

// startController wires a controller and enters the first slide. A failed
// first render is logged; the controller still serves requests.
func startController(ctx context.Context, c *config.Config, d *deck.Deck, logger *zap.Logger) *slides.Controller {
	ctrl := newController(c, d, logger)
	if _, err := ctrl.Start(ctx); err != nil {
		logger.Error("first slide failed to render", zap.Error(err))
	}
	return ctrl
}

// rasterFor starts a browser when any of formats needs one. The returned
// close func is never nil.
func rasterFor(ctx context.Context, c *config.Config, logger *zap.Logger, formats ...export.Format) (*export.Rasterizer, func(), error) {
	for _, f := range formats {
		if f.Raster() {
			r, err := export.NewRasterizer(ctx, c.Export.JPEGQuality, logger)
			if err != nil {
				return nil, func() {}, err
			}
			return r, r.Close, nil
		}
	}
	return nil, func() {}, nil
}

// writeSlide enters slide n on ctrl and writes it to w as format.
func writeSlide(ctx context.Context, ctrl *slides.Controller, raster *export.Rasterizer, n int, format export.Format, w io.Writer) error {
	_, err := ctrl.Show(ctx, n, func(st slides.State, container *scene.Container) error {
		if format == export.HTML {
			return page.Render(w, st, container, page.Options{})
		}
		if st.Err != nil {
			return st.Err
		}
		surface, err := container.Surface()
		if err != nil {
			return err
		}
		switch {
		case format == export.SVG:
			return surface.WriteSVG(w, scene.WriteOptions{Standalone: true})
		case raster == nil:
			return fmt.Errorf("%s output needs a browser", format)
		default:
			return raster.Write(ctx, surface, format, w)
		}
	})
	return err
}
