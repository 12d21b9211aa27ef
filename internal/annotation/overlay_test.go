package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-narrative/internal/deck"
	"github.com/buffos/go-narrative/internal/scene"
)

func containerWithSurface() (*scene.Container, *scene.Surface) {
	c := scene.NewContainer("chart_div")
	s := scene.NewSurface("chart_svg", 450, 350)
	c.Attach(s)
	return c, s
}

func TestApplyDrawsTwoCalloutsPerSlide(t *testing.T) {
	o := New(deck.Default(), nil)
	for slide := 1; slide <= 3; slide++ {
		c, s := containerWithSurface()
		require.NoError(t, o.Apply(c, slide))
		require.Len(t, s.Overlay, 2, "slide %d", slide)

		spec, _ := deck.Default().Slide(slide)
		for i, g := range s.Overlay {
			assert.Equal(t, &scene.Translate{X: spec.Annotations[i].X, Y: spec.Annotations[i].Y}, g.Transform)
		}
	}
}

func TestApplyUnknownSlide(t *testing.T) {
	c, s := containerWithSurface()
	err := New(deck.Default(), nil).Apply(c, 4)

	var slideErr *deck.UnrecognizedSlideError
	require.True(t, errors.As(err, &slideErr))
	assert.Equal(t, 4, slideErr.Number)
	assert.Empty(t, s.Overlay)
}

func TestApplyWithoutSurface(t *testing.T) {
	err := New(deck.Default(), nil).Apply(scene.NewContainer("chart_div"), 1)
	assert.ErrorIs(t, err, scene.ErrNoSurface)
}

func TestCalloutGeometry(t *testing.T) {
	g := Callout(deck.AnnotationSpec{
		Title: "Men", Label: "Men are working 0.5% less",
		X: 425, Y: 126, DX: -30, DY: -70, Color: "red",
	})
	require.Len(t, g.Children, 3)

	connector := g.Children[0].(*scene.Line)
	assert.Equal(t, -30.0, connector.X2)
	assert.Equal(t, -70.0, connector.Y2)
	assert.Equal(t, "red", connector.Stroke)

	subject := g.Children[1].(*scene.Circle)
	assert.Equal(t, 0.0, subject.CX)
	assert.Equal(t, "red", subject.Fill)

	note := g.Children[2].(*scene.Group)
	assert.Equal(t, &scene.Translate{X: -30, Y: -70}, note.Transform)

	underline := note.Children[0].(*scene.Line)
	assert.Equal(t, 0.0, underline.X2)
	assert.Less(t, underline.X1, 0.0)

	title := note.Children[1].(*scene.Text)
	label := note.Children[2].(*scene.Text)
	assert.Equal(t, "end", title.Anchor)
	assert.Equal(t, []string{"Men"}, title.Lines)
	assert.Less(t, label.Y, 0.0, "note sits above the underline when dy < 0")
	assert.Greater(t, label.Y, title.Y)
}

func TestCalloutBelowAndRight(t *testing.T) {
	g := Callout(deck.AnnotationSpec{
		Title: "Care for Non-Household Members",
		Label: "Time caring for other people outside household down 37.5%",
		X:     142, Y: 131, DX: 50, DY: 40, Color: "red",
	})
	note := g.Children[2].(*scene.Group)
	underline := note.Children[0].(*scene.Line)
	title := note.Children[1].(*scene.Text)
	label := note.Children[2].(*scene.Text)

	assert.Equal(t, 0.0, underline.X1)
	assert.LessOrEqual(t, underline.X2, float64(wrapWidth))
	assert.Equal(t, "start", title.Anchor)
	assert.Greater(t, title.Y, 0.0)
	assert.Len(t, label.Lines, 2)
}
