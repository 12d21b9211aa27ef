package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/export"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <slide> <format>",
	Short: "Render one slide",
	Long: fmt.Sprintf(`Render one slide to stdout or a file.

Formats: %s

Examples:
  narrative render 2 svg              # SVG on stdout
  narrative render 3 png -o s3.png    # PNG via headless Chrome`, strings.Join(export.Formats, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("slide must be a number, got %q", args[0])
	}
	format, err := export.ParseFormat(args[1])
	if err != nil {
		return err
	}

	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	if _, err := d.Slide(n); err != nil {
		return err
	}

	ctx := cmd.Context()
	raster, closeRaster, err := rasterFor(ctx, cfg, logger, format)
	if err != nil {
		return err
	}
	defer closeRaster()

	var w io.Writer = cmd.OutOrStdout()
	if renderOutput != "" {
		logger.Info("output directed to file", zap.String("path", renderOutput))
		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("creating output file '%s': %w", renderOutput, err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing output file '%s': %w", renderOutput, closeErr)
			}
		}()
		w = f
	}

	return writeSlide(ctx, newController(cfg, d, logger), raster, n, format, w)
}
