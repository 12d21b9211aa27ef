package cmd

import (
	"github.com/spf13/cobra"

	"github.com/buffos/go-narrative/internal/export"
	"github.com/buffos/go-narrative/internal/server"
)

var (
	serveAddress string
	serveRaster  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the slides over HTTP",
	Long: `Serve one page per slide, the chart as SVG and tooltip lookups.

Routes:
  GET /                                  redirect to /slides/1
  GET /slides/:n                         slide page
  GET /slides/:n/chart.svg               chart (png/jpg with --raster)
  GET /slides/:n/tooltip?group=&subgroup= tooltip text as JSON
  GET /healthz, /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from server.address)")
	serveCmd.Flags().BoolVar(&serveRaster, "raster", false, "serve PNG/JPEG charts through headless Chrome")
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	address := cfg.Server.Address
	if serveAddress != "" {
		address = serveAddress
	}

	ctx := cmd.Context()
	var raster server.Rasterizer
	if serveRaster {
		r, closeRaster, err := rasterFor(ctx, cfg, logger, export.PNG)
		if err != nil {
			return err
		}
		defer closeRaster()
		raster = r
	}

	return server.New(startController(ctx, cfg, d, logger), raster, logger).Run(ctx, address)
}
