package chart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-narrative/internal/scene"
)

func TestHoverShowsTooltip(t *testing.T) {
	state, c := renderExample(t)

	idx := -1
	for i, b := range state.Bars {
		if b.Group == "A" && b.Subgroup == "2019" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	tip, err := state.Hover(idx, PointerEvent{PageX: 100, PageY: 50})
	require.NoError(t, err)
	assert.Contains(t, tip.Text, "A")
	assert.Contains(t, tip.Text, "Pre-Pandemic (2019)")
	assert.Contains(t, tip.Text, "10")
	assert.Equal(t, []string{"A", "Pre-Pandemic (2019)", "10 hours"}, tip.Lines())
	assert.Equal(t, 110.0, tip.Left)
	assert.Equal(t, 40.0, tip.Top)
	assert.Equal(t, 0.9, c.Tooltip().Opacity)
	assert.Equal(t, 0.6, state.Bars[idx].Rect.Opacity)

	require.NoError(t, state.Leave(idx))
	assert.Equal(t, 0.0, c.Tooltip().Opacity)
	assert.Equal(t, 1.0, state.Bars[idx].Rect.Opacity)
}

func TestHoverOutOfRange(t *testing.T) {
	state, _ := renderExample(t)
	_, err := state.Hover(len(state.Bars), PointerEvent{})
	assert.Error(t, err)
	assert.Error(t, state.Leave(-1))
}

func TestHoverOnReplacedRender(t *testing.T) {
	state, c := renderExample(t)
	_, err := NewRenderer(testSource(), nil).Render(context.Background(), c, "example.csv", "Again")
	require.NoError(t, err)

	_, err = state.Hover(0, PointerEvent{})
	assert.Error(t, err)
}

func TestTooltipTextSeparatesThousands(t *testing.T) {
	text := TooltipText("Work", SubgroupStyle{Key: "2022", Label: "Post-Pandemic (2022)"}, 1234.5)
	assert.Equal(t, "Work\nPost-Pandemic (2022)\n1,234.5 hours", text)
}

func TestBarsCarryTooltipData(t *testing.T) {
	state, _ := renderExample(t)
	svg := state.Surface.SVG(scene.WriteOptions{})
	assert.Contains(t, svg, `data-tooltip="B&#10;Post-Pandemic (2022)&#10;5 hours"`)
}

func TestStylesValidate(t *testing.T) {
	s := DefaultStyles()
	assert.NoError(t, s.Validate([]string{"2022", "2019"}))
	assert.Error(t, s.Validate([]string{"2019"}))
	assert.Error(t, s.Validate([]string{"2019", "2020"}))
}
