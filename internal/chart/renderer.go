// Package chart draws one grouped horizontal bar chart per render: value
// axis, category axis, gridlines, bars, captions, legend and the tooltip
// data each bar carries.
package chart

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/format"
	"github.com/buffos/go-narrative/internal/scale"
	"github.com/buffos/go-narrative/internal/scene"
)

const (
	// SurfaceElementID is the id of the svg element a render produces.
	SurfaceElementID = "chart_svg"

	niceCount         = 10
	valueTicks        = 5
	gridTicks         = 6
	categoryPadding   = 0.2
	subgroupPadding   = 0.05
	valueTickPadding  = 6
	categoryTickPad   = 8
	legendSwatchSize  = 10
	legendEntryOffset = 80
)

// Renderer turns a dataset into a chart on a container.
type Renderer struct {
	Source dataset.Source
	Layout Layout
	Labels Labels
	Styles Styles
	Logger *zap.Logger
}

// NewRenderer returns a renderer with the default layout, labels and styles.
func NewRenderer(src dataset.Source, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		Source: src,
		Layout: DefaultLayout(),
		Labels: DefaultLabels(),
		Styles: DefaultStyles(),
		Logger: logger,
	}
}

// Render clears c, loads datasetRef and draws it titled title. On error the
// container is left empty and no partial chart is attached.
func (r *Renderer) Render(ctx context.Context, c *scene.Container, datasetRef, title string) (*RenderState, error) {
	start := time.Now()
	c.Clear()

	points, err := dataset.Load(ctx, r.Source, datasetRef)
	if err != nil {
		r.Logger.Error("dataset load failed", zap.String("dataset", datasetRef), zap.Error(err))
		return nil, err
	}

	series := dataset.Aggregate(points)
	if err := series.Validate(); err != nil {
		r.Logger.Error("inconsistent subgroups", zap.String("dataset", datasetRef), zap.Error(err))
		return nil, err
	}
	if err := r.Styles.Validate(series.Subgroups()); err != nil {
		r.Logger.Error("unstyled subgroups", zap.String("dataset", datasetRef), zap.Error(err))
		return nil, err
	}

	state := r.build(series, math.Max(dataset.MaxValue(points), series.Max()), datasetRef, title)
	state.container = c
	c.Attach(state.Surface)

	r.Logger.Debug("chart rendered",
		zap.String("dataset", datasetRef),
		zap.String("title", title),
		zap.Int("groups", series.Len()),
		zap.Int("bars", len(state.Bars)),
		zap.Float64("domain_max", state.X.D1),
		zap.Duration("elapsed", time.Since(start)))
	return state, nil
}

func (r *Renderer) build(series dataset.GroupedSeries, max float64, datasetRef, title string) *RenderState {
	width, height := r.Layout.PlotWidth(), r.Layout.PlotHeight()
	m := r.Layout.Margin

	// --- Scales ---
	// An all-zero dataset would give the degenerate domain [0,0]; keep a
	// unit domain so zero-valued bars stay zero wide.
	if max <= 0 {
		max = 1
	}
	x := scale.NewLinear(0, max, 0, width).Nice(niceCount)
	y := scale.NewBand(series.GroupNames(), 0, height, categoryPadding)
	ySub := scale.NewBand(series.Subgroups(), 0, y.Bandwidth(), subgroupPadding)

	// --- Surface, plot area shifted by the margins ---
	surface := scene.NewSurface(SurfaceElementID, r.Layout.Width, r.Layout.Height)
	plot := surface.Plot
	plot.Transform = &scene.Translate{X: m.Left, Y: m.Top}

	state := &RenderState{
		Dataset: datasetRef,
		Title:   title,
		Series:  series,
		X:       x,
		Y:       y,
		YSub:    ySub,
		Styles:  r.Styles,
		Surface: surface,
	}

	// --- Axes and gridlines (drawn first so bars sit on top) ---
	plot.Add(valueAxis(x, height), categoryAxis(y, height), gridlines(x, height))

	// --- Bars: one row per group, one rect per subgroup within the row ---
	bars := &scene.Group{Class: "bars"}
	for _, g := range series.Groups() {
		band, _ := y.Map(g.Name)
		row := &scene.Group{Class: "bar-group", Transform: &scene.Translate{Y: band}}
		for _, v := range g.Values {
			style, _ := r.Styles.Lookup(v.Name)
			offset, _ := ySub.Map(v.Name)
			bar := &Bar{
				Group:    g.Name,
				Subgroup: v.Name,
				Value:    v.Sum,
				Band:     band,
				Tooltip:  TooltipText(g.Name, style, v.Sum),
			}
			bar.Rect = &scene.Rect{
				ID:     fmt.Sprintf("bar-%d", len(state.Bars)),
				Class:  "bar",
				X:      x.Map(0),
				Y:      offset,
				Width:  x.Map(v.Sum),
				Height: ySub.Bandwidth(),
				Fill:   style.Color,
				Data: map[string]string{
					"index":   fmt.Sprint(len(state.Bars)),
					"tooltip": bar.Tooltip,
				},
			}
			row.Add(bar.Rect)
			state.Bars = append(state.Bars, bar)
		}
		bars.Add(row)
	}
	plot.Add(bars)

	// --- Title, hover instructions, axis caption and footnotes ---
	// Positions are relative to the plot origin and reach into the margins.
	left := -m.Left * 0.7
	top := -m.Top / 1.5
	plot.Add(
		&scene.Text{Class: "chart-title", X: left, Y: top, Anchor: "start", Content: title},
		&scene.Text{Class: "tooltip-instructions", X: left + 300, Y: top + 3, Anchor: "start", Content: r.Labels.Instructions[0]},
		&scene.Text{Class: "tooltip-instructions", X: left + 300, Y: top + 10, Anchor: "start", Content: r.Labels.Instructions[1]},
		&scene.Text{Class: "chart-label", X: width / 2, Y: height + m.Bottom/2, Anchor: "middle", Content: r.Labels.AxisCaption},
		&scene.Text{Class: "data-source", X: left, Y: height + m.Bottom*0.7, Anchor: "start", Content: r.Labels.Source},
		&scene.Text{Class: "data-footnote", X: left, Y: height + m.Bottom*0.9, Anchor: "start", Content: r.Labels.Footnote},
	)
	// --- Legend, one swatch per subgroup style ---
	plot.Add(legend(r.Styles, left, m.Top))
	return state
}

func valueAxis(x *scale.Linear, height float64) *scene.Group {
	axis := &scene.Group{Class: "axis axis-x", Transform: &scene.Translate{Y: height}}
	for _, t := range x.Ticks(valueTicks) {
		axis.Add((&scene.Group{Class: "tick", Transform: &scene.Translate{X: x.Map(t)}}).Add(
			&scene.Text{Y: valueTickPadding, DY: "0.71em", Anchor: "middle", Content: format.SI(t, 1)},
		))
	}
	return axis
}

func categoryAxis(y *scale.Band, height float64) *scene.Group {
	axis := &scene.Group{Class: "axis axis-y"}
	axis.Add(&scene.Line{Class: "domain", X1: 0, Y1: 0, X2: 0, Y2: height, Stroke: "currentColor"})
	for _, name := range y.Domain() {
		band, _ := y.Map(name)
		axis.Add((&scene.Group{Class: "tick", Transform: &scene.Translate{Y: band + y.Bandwidth()/2}}).Add(
			&scene.Text{X: -categoryTickPad, DY: "0.32em", Anchor: "end", Content: name},
		))
	}
	return axis
}

func gridlines(x *scale.Linear, height float64) *scene.Group {
	grid := &scene.Group{Class: "grid"}
	for _, t := range x.Ticks(gridTicks) {
		px := x.Map(t)
		grid.Add(&scene.Line{X1: px, Y1: 0, X2: px, Y2: height})
	}
	return grid
}

func legend(styles Styles, left, marginTop float64) *scene.Group {
	g := &scene.Group{Class: "legend-entries"}
	for i, st := range styles {
		dx := float64(i) * legendEntryOffset
		g.Add(
			&scene.Rect{X: left + dx, Y: -marginTop / 2, Width: legendSwatchSize, Height: legendSwatchSize, Fill: st.Color},
			&scene.Text{Class: "legend", X: left + dx + 15, Y: -marginTop / 2.5, Content: st.Label},
		)
	}
	return g
}
