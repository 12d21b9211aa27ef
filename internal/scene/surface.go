package scene

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNoSurface is returned when a drawing step needs a surface and the
// container has none.
var ErrNoSurface = errors.New("container has no drawing surface")

// Surface is one SVG drawing: a fixed viewbox, the plot group translated
// by the chart margins, and overlay groups placed in raw viewbox
// coordinates on top of it.
type Surface struct {
	ID        string
	ElementID string
	Width     float64
	Height    float64
	Plot      *Group
	Overlay   []*Group
}

// NewSurface creates an empty surface with a fresh ID.
func NewSurface(elementID string, width, height float64) *Surface {
	return &Surface{
		ID:        uuid.NewString(),
		ElementID: elementID,
		Width:     width,
		Height:    height,
		Plot:      &Group{},
	}
}

// AppendOverlay adds a group drawn after (above) the plot.
func (s *Surface) AppendOverlay(g *Group) {
	s.Overlay = append(s.Overlay, g)
}

// Tooltip is the floating label shown while a bar is hovered.
type Tooltip struct {
	Opacity float64
	Text    string
	Left    float64
	Top     float64
}

// Lines splits the tooltip text at its line breaks.
func (t Tooltip) Lines() []string {
	if t.Text == "" {
		return nil
	}
	return strings.Split(t.Text, "\n")
}

// Container is the element a renderer draws into. It holds at most one
// surface and its tooltip.
type Container struct {
	ID      string
	surface *Surface
	tooltip *Tooltip
}

// NewContainer returns an empty container.
func NewContainer(id string) *Container {
	return &Container{ID: id}
}

// Clear drops the current surface and tooltip. Safe on an empty container.
func (c *Container) Clear() {
	c.surface = nil
	c.tooltip = nil
}

// Attach replaces whatever the container holds with s and a hidden tooltip.
func (c *Container) Attach(s *Surface) *Tooltip {
	c.surface = s
	c.tooltip = &Tooltip{}
	return c.tooltip
}

// Surface returns the current surface or ErrNoSurface.
func (c *Container) Surface() (*Surface, error) {
	if c.surface == nil {
		return nil, ErrNoSurface
	}
	return c.surface, nil
}

// Tooltip returns the current tooltip, nil when no surface is attached.
func (c *Container) Tooltip() *Tooltip { return c.tooltip }

// Surfaces counts attached surfaces; it is 0 or 1.
func (c *Container) Surfaces() int {
	if c.surface == nil {
		return 0
	}
	return 1
}
