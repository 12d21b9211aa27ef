// Package annotation draws a slide's fixed callouts over a rendered chart.
package annotation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/deck"
	"github.com/buffos/go-narrative/internal/scene"
)

const (
	wrapWidth     = 120
	notePadding   = 3
	noteFontSize  = 7
	subjectRadius = 2
)

// Overlay applies the callouts listed in a deck.
type Overlay struct {
	Deck   *deck.Deck
	Logger *zap.Logger
}

// New returns an overlay for d.
func New(d *deck.Deck, logger *zap.Logger) *Overlay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Overlay{Deck: d, Logger: logger}
}

// Apply draws slide's callouts on the surface currently in c. It must run
// after the chart render for the same slide has attached that surface.
func (o *Overlay) Apply(c *scene.Container, slide int) error {
	spec, err := o.Deck.Slide(slide)
	if err != nil {
		o.Logger.Error("no slide with this number", zap.Int("slide", slide), zap.Error(err))
		return err
	}
	surface, err := c.Surface()
	if err != nil {
		return fmt.Errorf("annotating slide %d: %w", slide, err)
	}
	for _, a := range spec.Annotations {
		surface.AppendOverlay(Callout(a))
	}
	o.Logger.Debug("annotations applied", zap.Int("slide", slide), zap.Int("count", len(spec.Annotations)))
	return nil
}

// Callout lays out one annotation: a subject dot at (X, Y), a connector to
// the note at (X+DX, Y+DY), and the note's title and wrapped label sitting
// on an underline. The note grows away from the subject on both axes.
func Callout(a deck.AnnotationSpec) *scene.Group {
	// --- Wrap the note text and measure its widest line ---
	titleLines := scene.Wrap(a.Title, wrapWidth, noteFontSize)
	labelLines := scene.Wrap(a.Label, wrapWidth, noteFontSize)
	lh := scene.LineHeight(noteFontSize)

	var width float64
	for _, l := range append(append([]string(nil), titleLines...), labelLines...) {
		width = math.Max(width, scene.EstimateTextWidth(l, noteFontSize))
	}

	// --- Underline on the side facing the connector ---
	anchor, x1, x2 := "start", 0.0, width
	if a.DX < 0 {
		anchor, x1, x2 = "end", -width, 0
	}

	// --- Baseline of the first line: below the underline, or stacked above
	// it when the note sits above the subject ---
	n := float64(len(titleLines) + len(labelLines))
	first := float64(notePadding + noteFontSize)
	if a.DY < 0 {
		first = -notePadding - noteFontSize*0.2 - (n-1)*lh
	}

	// --- Note: underline, bold title, then the label under it ---
	note := &scene.Group{Class: "annotation-note", Transform: &scene.Translate{X: a.DX, Y: a.DY}}
	note.Add(&scene.Line{Class: "note-line", X1: x1, Y1: 0, X2: x2, Y2: 0, Stroke: a.Color})
	if len(titleLines) > 0 {
		note.Add(&scene.Text{
			Class:      "annotation-note-title",
			Y:          first,
			Anchor:     anchor,
			Fill:       a.Color,
			FontWeight: "bold",
			Lines:      titleLines,
			LineHeight: lh,
		})
	}
	if len(labelLines) > 0 {
		note.Add(&scene.Text{
			Class:      "annotation-note-label",
			Y:          first + float64(len(titleLines))*lh,
			Anchor:     anchor,
			Fill:       a.Color,
			Lines:      labelLines,
			LineHeight: lh,
		})
	}

	// --- Callout: connector from the subject, subject dot, note ---
	return (&scene.Group{Class: "annotation callout", Transform: &scene.Translate{X: a.X, Y: a.Y}}).Add(
		&scene.Line{Class: "connector", X1: 0, Y1: 0, X2: a.DX, Y2: a.DY, Stroke: a.Color},
		&scene.Circle{Class: "subject", R: subjectRadius, Fill: a.Color},
		note,
	)
}
