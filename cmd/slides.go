package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/buffos/go-narrative/internal/chart"
	"github.com/buffos/go-narrative/internal/output"
)

var slidesYAML bool

var slidesCmd = &cobra.Command{
	Use:     "slides",
	Aliases: []string{"ls"},
	Short:   "List the slides of the deck",
	Long: `List the slides of the deck and the subgroup colors.

Examples:
  narrative slides                      # Table of slides
  narrative slides --yaml > deck.yaml   # Starting point for deck.file`,
	Args: cobra.NoArgs,
	RunE: runSlides,
}

func init() {
	rootCmd.AddCommand(slidesCmd)
	slidesCmd.Flags().BoolVar(&slidesYAML, "yaml", false, "print the deck as YAML")
}

func runSlides(cmd *cobra.Command, args []string) error {
	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	if slidesYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}

	printer := output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorsEnabled())

	printer.Header("Slides")
	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"SLIDE", "DATASET", "CHART TITLE", "CALLOUTS"})
	for _, s := range d.Slides() {
		var callouts string
		for i, a := range s.Annotations {
			if i > 0 {
				callouts += ", "
			}
			callouts += a.Title
		}
		table.AddRow([]string{printer.Bold(strconv.Itoa(s.Number)), s.Dataset, s.ChartTitle, callouts})
	}
	if err := table.Render(); err != nil {
		return err
	}

	printer.Header("Subgroups")
	styles := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"KEY", "LABEL", "COLOR"})
	for _, st := range chart.DefaultStyles() {
		styles.AddRow([]string{st.Key, st.Label, printer.Swatch(st.Color)})
	}
	return styles.Render()
}
