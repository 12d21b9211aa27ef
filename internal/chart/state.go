package chart

import (
	"fmt"

	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/format"
	"github.com/buffos/go-narrative/internal/scale"
	"github.com/buffos/go-narrative/internal/scene"
)

const (
	hoverBarOpacity     = 0.6
	hoverTooltipOpacity = 0.9
)

// Bar is one drawn rectangle and the data behind it. Band is the offset of
// the bar's group on the category axis; Rect coordinates are relative to it.
type Bar struct {
	Group    string
	Subgroup string
	Value    float64
	Band     float64
	Tooltip  string
	Rect     *scene.Rect
}

// PointerEvent is a pointer position in page coordinates.
type PointerEvent struct {
	PageX, PageY float64
}

// RenderState is everything one render produced. It is the context hover
// handlers work against; a new render replaces it wholesale.
type RenderState struct {
	Dataset   string
	Title     string
	Series    dataset.GroupedSeries
	X         *scale.Linear
	Y         *scale.Band
	YSub      *scale.Band
	Styles    Styles
	Bars      []*Bar
	Surface   *scene.Surface
	container *scene.Container
}

// Bar returns the bar for (group, subgroup).
func (s *RenderState) Bar(group, subgroup string) (*Bar, bool) {
	for _, b := range s.Bars {
		if b.Group == group && b.Subgroup == subgroup {
			return b, true
		}
	}
	return nil, false
}

// Hover shows the tooltip for bar i next to the pointer and dims the bar.
func (s *RenderState) Hover(i int, ev PointerEvent) (scene.Tooltip, error) {
	bar, tip, err := s.target(i)
	if err != nil {
		return scene.Tooltip{}, err
	}
	bar.Rect.Opacity = hoverBarOpacity
	tip.Opacity = hoverTooltipOpacity
	tip.Text = bar.Tooltip
	tip.Left = ev.PageX + 10
	tip.Top = ev.PageY - 10
	return *tip, nil
}

// Leave hides the tooltip and restores bar i.
func (s *RenderState) Leave(i int) error {
	bar, tip, err := s.target(i)
	if err != nil {
		return err
	}
	bar.Rect.Opacity = 1
	tip.Opacity = 0
	return nil
}

func (s *RenderState) target(i int) (*Bar, *scene.Tooltip, error) {
	if i < 0 || i >= len(s.Bars) {
		return nil, nil, fmt.Errorf("bar %d out of range [0,%d)", i, len(s.Bars))
	}
	if cur, err := s.container.Surface(); err != nil || cur != s.Surface {
		return nil, nil, fmt.Errorf("render of %q is no longer on screen", s.Dataset)
	}
	return s.Bars[i], s.container.Tooltip(), nil
}

// TooltipText formats the hover label for one bar.
func TooltipText(group string, style SubgroupStyle, value float64) string {
	return fmt.Sprintf("%s\n%s\n%s hours", group, style.Label, format.Thousands(value))
}
