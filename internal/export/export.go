// Package export turns a chart surface into the output formats the CLI and
// server offer. Raster formats are rendered by headless Chrome.
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/metrics"
	"github.com/buffos/go-narrative/internal/scene"
)

// Format is an output format.
type Format string

const (
	SVG  Format = "svg"
	HTML Format = "html"
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// Formats lists the accepted format names in the order help text shows them.
var Formats = []string{"svg", "html", "png", "jpg", "jpeg"}

// ParseFormat maps a name (case-insensitive; "jpg" is an alias for "jpeg")
// to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "svg":
		return SVG, nil
	case "html":
		return HTML, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("unsupported export format '%s'. Supported formats: %s", name, strings.Join(Formats, ", "))
}

// Raster reports whether f needs a browser.
func (f Format) Raster() bool { return f == PNG || f == JPEG }

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Rasterizer screenshots standalone SVGs in one shared headless browser.
// Each call opens its own tab, so calls may run concurrently.
type Rasterizer struct {
	JPEGQuality int
	// Scale multiplies the viewbox size to get the image size in pixels.
	Scale  float64
	Logger *zap.Logger

	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
}

// NewRasterizer starts the browser. Close releases it.
func NewRasterizer(ctx context.Context, jpegQuality int, logger *zap.Logger) (*Rasterizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}
	logger.Debug("headless browser started")

	return &Rasterizer{
		JPEGQuality:   jpegQuality,
		Scale:         2,
		Logger:        logger,
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
	}, nil
}

// Close shuts the browser down.
func (r *Rasterizer) Close() {
	r.cancelBrowser()
	r.cancelAlloc()
}

// Write renders s as format to w.
func (r *Rasterizer) Write(ctx context.Context, s *scene.Surface, format Format, w io.Writer) (err error) {
	defer func() {
		metrics.ImageExportsTotal.WithLabelValues(string(format), metrics.Status(err)).Inc()
	}()
	if !format.Raster() {
		return fmt.Errorf("internal error: unsupported image format '%s' with chromedp", format)
	}

	// 1. Standalone SVG on white, sized in pixels, as a base64 data URI
	// so nothing touches the disk
	svgString := s.SVG(scene.WriteOptions{Standalone: true, Background: "#fff", Scale: r.Scale})
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgString))

	// 2. New tab in the shared browser, closed early if ctx is cancelled
	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	// 3. Navigate, wait for the svg element and screenshot it
	var screenshotBuf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshotBuf, chromedp.ByQuery),
	}
	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(screenshotBuf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}

	// 4. Screenshot is a PNG; re-encode for JPEG
	if err := encode(bytes.NewReader(screenshotBuf), format, r.JPEGQuality, w); err != nil {
		return err
	}
	r.Logger.Debug("image encoded", zap.String("format", string(format)), zap.Int("png_bytes", len(screenshotBuf)))
	return nil
}

// encode writes a PNG screenshot as format.
func encode(screenshot io.Reader, format Format, quality int, w io.Writer) error {
	switch format {
	case PNG:
		if _, err := io.Copy(w, screenshot); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case JPEG:
		img, err := png.Decode(screenshot)
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", err)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("internal error: unsupported image format '%s' with chromedp", format)
	}
	return nil
}
