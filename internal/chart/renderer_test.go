package chart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/scene"
)

const exampleCSV = "group,subgroup,value\nA,2019,10\nA,2022,15\nB,2019,5\nB,2022,5\n"

func testSource() dataset.Source {
	return dataset.FSSource{FS: fstest.MapFS{
		"example.csv":  {Data: []byte(exampleCSV)},
		"empty.csv":    {Data: []byte("group,subgroup,value\n")},
		"ragged.csv":   {Data: []byte("group,subgroup,value\nA,2019,1\nA,2022,2\nB,2019,3\n")},
		"unstyled.csv": {Data: []byte("group,subgroup,value\nA,2019,1\nA,2020,2\n")},
		"dupes.csv":    {Data: []byte("group,subgroup,value\nA,2019,10\nA,2019,10\nA,2022,1\n")},
		"zeros.csv":    {Data: []byte("group,subgroup,value\nA,2019,0\nA,2022,0\n")},
	}}
}

func renderExample(t *testing.T) (*RenderState, *scene.Container) {
	t.Helper()
	c := scene.NewContainer("chart_div")
	state, err := NewRenderer(testSource(), nil).Render(context.Background(), c, "example.csv", "Test")
	require.NoError(t, err)
	return state, c
}

type barGeometry struct {
	Group, Subgroup string
	Width           float64
	Fill            string
}

func TestRenderExample(t *testing.T) {
	state, c := renderExample(t)

	assert.Equal(t, 1, c.Surfaces())
	assert.Equal(t, []string{"A", "B"}, state.Y.Domain())
	assert.Equal(t, 0.0, state.X.D0)
	assert.GreaterOrEqual(t, state.X.D1, 15.0)

	unit := 290 / state.X.D1
	var got []barGeometry
	for _, b := range state.Bars {
		got = append(got, barGeometry{b.Group, b.Subgroup, b.Rect.Width, b.Rect.Fill})
	}
	want := []barGeometry{
		{"A", "2019", 10 * unit, "#0073BB"},
		{"A", "2022", 15 * unit, "#8EBFFE"},
		{"B", "2019", 5 * unit, "#0073BB"},
		{"B", "2022", 5 * unit, "#8EBFFE"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("bars mismatch (-want +got):\n%s", diff)
	}

	a, _ := state.Bar("A", "2019")
	b, _ := state.Bar("B", "2019")
	assert.InDelta(t, state.Y.Step(), b.Band-a.Band, 1e-9)
	assert.InDelta(t, state.YSub.Bandwidth(), a.Rect.Height, 1e-9)
}

func TestRenderEverySubgroupPerGroup(t *testing.T) {
	state, _ := renderExample(t)
	drawn := map[string][]string{}
	for _, b := range state.Bars {
		drawn[b.Group] = append(drawn[b.Group], b.Subgroup)
	}
	for group, subs := range drawn {
		assert.Equal(t, state.Series.Subgroups(), subs, group)
	}
}

func TestRenderDomainCoversAggregatedBars(t *testing.T) {
	c := scene.NewContainer("chart_div")
	state, err := NewRenderer(testSource(), nil).Render(context.Background(), c, "dupes.csv", "Dupes")
	require.NoError(t, err)

	bar, ok := state.Bar("A", "2019")
	require.True(t, ok)
	assert.Equal(t, 20.0, bar.Value)
	assert.LessOrEqual(t, bar.Rect.Width, 290.0)
}

func TestRenderZeroValuesDrawEmptyBars(t *testing.T) {
	c := scene.NewContainer("chart_div")
	state, err := NewRenderer(testSource(), nil).Render(context.Background(), c, "zeros.csv", "Zeros")
	require.NoError(t, err)

	assert.Equal(t, 0.0, state.X.D0)
	assert.Greater(t, state.X.D1, 0.0)
	require.Len(t, state.Bars, 2)
	for _, b := range state.Bars {
		assert.Equal(t, 0.0, b.Value)
		assert.Equal(t, 0.0, b.Rect.X)
		assert.Equal(t, 0.0, b.Rect.Width, b.Subgroup)
	}
	assert.Greater(t, len(state.X.Ticks(valueTicks)), 1)
}

func TestRenderTwiceLeavesOneSurface(t *testing.T) {
	r := NewRenderer(testSource(), nil)
	c := scene.NewContainer("chart_div")

	first, err := r.Render(context.Background(), c, "example.csv", "One")
	require.NoError(t, err)
	second, err := r.Render(context.Background(), c, "example.csv", "Two")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Surfaces())
	cur, err := c.Surface()
	require.NoError(t, err)
	assert.Same(t, second.Surface, cur)
	assert.NotEqual(t, first.Surface.ID, second.Surface.ID)
}

func TestRenderLoadFailureLeavesEmptyContainer(t *testing.T) {
	r := NewRenderer(testSource(), nil)
	c := scene.NewContainer("chart_div")
	_, err := r.Render(context.Background(), c, "example.csv", "Before")
	require.NoError(t, err)

	for _, ref := range []string{"missing.csv", "empty.csv"} {
		_, err = r.Render(context.Background(), c, ref, "After")
		var loadErr *dataset.DataLoadError
		assert.True(t, errors.As(err, &loadErr), ref)
		assert.Equal(t, 0, c.Surfaces(), ref)
	}
}

func TestRenderRejectsInconsistentDomains(t *testing.T) {
	r := NewRenderer(testSource(), nil)
	for _, ref := range []string{"ragged.csv", "unstyled.csv"} {
		c := scene.NewContainer("chart_div")
		_, err := r.Render(context.Background(), c, ref, "Bad")
		var domainErr *dataset.InconsistentDomainError
		assert.True(t, errors.As(err, &domainErr), ref)
		assert.Equal(t, 0, c.Surfaces(), ref)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer(testSource(), nil).Render(ctx, scene.NewContainer("chart_div"), "example.csv", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderDrawsCaptionsAndAxes(t *testing.T) {
	state, _ := renderExample(t)
	svg := state.Surface.SVG(scene.WriteOptions{})

	for _, want := range []string{
		`class="chart-title" x="-98" y="-40" text-anchor="start">Test</text>`,
		`class="tooltip-instructions" x="202" y="-37"`,
		`class="chart-label" x="145" y="265" text-anchor="middle">Average Time Spent Per Day (hours)</text>`,
		`class="data-source" x="-98" y="275"`,
		`class="data-footnote" x="-98" y="285"`,
		`<rect x="-98" y="-30" width="10" height="10" fill="#0073BB"/>`,
		`<rect x="-18" y="-30" width="10" height="10" fill="#8EBFFE"/>`,
		`class="legend" x="-83" y="-24">Pre-Pandemic (2019)</text>`,
		`class="legend" x="-3" y="-24">Post-Pandemic (2022)</text>`,
		`<g transform="translate(140,60)">`,
		`<g class="axis axis-x" transform="translate(0,240)">`,
		`<g class="tick" transform="translate(271.88,0)">`,
		`dy="0.71em" text-anchor="middle">20</text>`,
		`x="-8" y="0" dy="0.32em" text-anchor="end">A</text>`,
	} {
		assert.Contains(t, svg, want)
	}
	assert.NotContains(t, svg, `text-anchor="middle">15</text>`)
	assert.Less(t, strings.Index(svg, `class="grid"`), strings.Index(svg, `class="bars"`))
}
