package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/buffos/go-narrative/internal/export"
	"github.com/buffos/go-narrative/internal/output"
)

var exportFormats []string

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Render every slide into a directory",
	Long: `Render every slide of the deck into <dir> as slide<N>.<ext>, one file per
requested format. Slides render concurrently, each into its own container.

Examples:
  narrative export out/                       # svg and html
  narrative export out/ --formats svg,png,jpg # include images`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringSliceVar(&exportFormats, "formats", []string{"svg", "html"},
		"output formats ("+strings.Join(export.Formats, ", ")+")")
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	formats := make([]export.Format, 0, len(exportFormats))
	for _, name := range exportFormats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx := cmd.Context()
	raster, closeRaster, err := rasterFor(ctx, cfg, logger, formats...)
	if err != nil {
		return err
	}
	defer closeRaster()

	printer := output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorsEnabled())

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Export.Concurrency)
	for _, spec := range d.Slides() {
		n := spec.Number
		g.Go(func() error {
			ctrl := newController(cfg, d, logger)
			for _, f := range formats {
				path := filepath.Join(dir, fmt.Sprintf("slide%d.%s", n, f.Ext()))
				if err := writeFile(path, func(file *os.File) error {
					return writeSlide(gCtx, ctrl, raster, n, f, file)
				}); err != nil {
					printer.Error("%s: %v", path, err)
					return err
				}
				logger.Debug("slide exported", zap.Int("slide", n), zap.String("path", path))
				printer.Success("wrote %s", path)
			}
			return nil
		})
	}
	return g.Wait()
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file '%s': %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file '%s': %w", path, closeErr)
		}
	}()
	return write(f)
}
