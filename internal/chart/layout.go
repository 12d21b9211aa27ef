package chart

import (
	"sort"

	"github.com/buffos/go-narrative/internal/dataset"
)

// Margin insets the plot area inside the viewbox.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout is the fixed logical geometry of a chart.
type Layout struct {
	Width  float64
	Height float64
	Margin Margin
}

// DefaultLayout is a 450x350 viewbox with a 290x240 plot area.
func DefaultLayout() Layout {
	return Layout{
		Width:  450,
		Height: 350,
		Margin: Margin{Top: 60, Right: 20, Bottom: 50, Left: 140},
	}
}

// PlotWidth is the width of the area bars are drawn in.
func (l Layout) PlotWidth() float64 { return l.Width - l.Margin.Left - l.Margin.Right }

// PlotHeight is the height of the area bars are drawn in.
func (l Layout) PlotHeight() float64 { return l.Height - l.Margin.Top - l.Margin.Bottom }

// Labels are the fixed captions drawn around every chart.
type Labels struct {
	Instructions [2]string
	AxisCaption  string
	Source       string
	Footnote     string
}

// DefaultLabels returns the captions for the time-use narrative.
func DefaultLabels() Labels {
	return Labels{
		Instructions: [2]string{"Move mouse over bars in", "chart to see details"},
		AxisCaption:  "Average Time Spent Per Day (hours)",
		Source:       "Source: U.S. Bureau of Labor Statistics",
		Footnote:     "Time spent by employed persons age 15 and over on working days",
	}
}

// SubgroupStyle is the legend label and bar color of one subgroup key.
type SubgroupStyle struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Label string `mapstructure:"label" yaml:"label"`
	Color string `mapstructure:"color" yaml:"color"`
}

// Styles maps subgroup keys to their styles. Order is the legend order.
type Styles []SubgroupStyle

// DefaultStyles covers the two comparison years.
func DefaultStyles() Styles {
	return Styles{
		{Key: "2019", Label: "Pre-Pandemic (2019)", Color: "#0073BB"},
		{Key: "2022", Label: "Post-Pandemic (2022)", Color: "#8EBFFE"},
	}
}

// Lookup returns the style for key.
func (s Styles) Lookup(key string) (SubgroupStyle, bool) {
	for _, st := range s {
		if st.Key == key {
			return st, true
		}
	}
	return SubgroupStyle{}, false
}

// Keys returns the subgroup keys in legend order.
func (s Styles) Keys() []string {
	keys := make([]string, len(s))
	for i, st := range s {
		keys[i] = st.Key
	}
	return keys
}

// Validate checks that the dataset's subgroup domain is exactly the set of
// styled keys.
func (s Styles) Validate(subgroups []string) error {
	want := s.Keys()
	if len(want) != len(subgroups) {
		return &dataset.InconsistentDomainError{Got: subgroups, Want: want}
	}
	got := append([]string(nil), subgroups...)
	sorted := append([]string(nil), want...)
	sort.Strings(got)
	sort.Strings(sorted)
	for i := range got {
		if got[i] != sorted[i] {
			return &dataset.InconsistentDomainError{Got: subgroups, Want: want}
		}
	}
	return nil
}
