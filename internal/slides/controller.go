// Package slides moves the narrative between slides: it owns which slide is
// showing, the navigation button states and the caption, and drives the
// chart render and annotation pass for each transition.
package slides

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/chart"
	"github.com/buffos/go-narrative/internal/deck"
	"github.com/buffos/go-narrative/internal/metrics"
	"github.com/buffos/go-narrative/internal/scene"
)

// Navigation button classes.
const (
	ClassSelected   = "nav-button-select"
	ClassUnselected = "nav-button"
)

// ChartRenderer draws a dataset into a container.
type ChartRenderer interface {
	Render(ctx context.Context, c *scene.Container, datasetRef, title string) (*chart.RenderState, error)
}

// AnnotationOverlay draws a slide's callouts onto the container's surface.
type AnnotationOverlay interface {
	Apply(c *scene.Container, slide int) error
}

// NavButton is one navigation affordance.
type NavButton struct {
	ID    string
	Slide int
	Class string
}

// Selected reports whether the button is marked as the current slide.
func (b NavButton) Selected() bool { return b.Class == ClassSelected }

// State is what the page shows after a transition. Render is nil until a
// render has succeeded for Slide; Err holds the failure of the last pass.
type State struct {
	Slide   int
	Nav     []NavButton
	Caption string
	Render  *chart.RenderState
	Err     error
}

// Controller serialises slide transitions. A request arriving while a
// render is in flight waits for it to finish and then runs; none are
// dropped.
type Controller struct {
	mu        sync.Mutex
	deck      *deck.Deck
	renderer  ChartRenderer
	overlay   AnnotationOverlay
	container *scene.Container
	logger    *zap.Logger
	state     State
}

// New returns a controller that has not entered any slide yet.
func New(d *deck.Deck, renderer ChartRenderer, overlay AnnotationOverlay, container *scene.Container, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		deck:      d,
		renderer:  renderer,
		overlay:   overlay,
		container: container,
		logger:    logger,
	}
}

// Start enters the first slide.
func (c *Controller) Start(ctx context.Context) (State, error) {
	return c.GoToSlide(ctx, 1)
}

// GoToSlide enters slide n. An unknown n is rejected and the current state
// kept. Otherwise navigation and caption switch to n before the chart is
// drawn, so a failed render leaves slide n selected with an empty chart.
func (c *Controller) GoToSlide(ctx context.Context, n int) (State, error) {
	return c.Show(ctx, n, nil)
}

// Show enters slide n like GoToSlide and then calls view, if non-nil, with
// the resulting state and container before the next transition may start.
// view is not called for an unknown slide.
func (c *Controller) Show(ctx context.Context, n int, view func(State, *scene.Container) error) (State, error) {
	metrics.TransitionsWaiting.Inc()
	c.mu.Lock()
	metrics.TransitionsWaiting.Dec()
	defer c.mu.Unlock()

	st, err := c.enter(ctx, n)
	if view != nil && !IsUnrecognizedSlide(err) {
		if viewErr := view(st, c.container); viewErr != nil && err == nil {
			err = viewErr
		}
	}
	return st, err
}

func (c *Controller) enter(ctx context.Context, n int) (State, error) {
	label := strconv.Itoa(n)
	spec, err := c.deck.Slide(n)
	if err != nil {
		c.logger.Error("slide transition rejected", zap.Int("slide", n), zap.Error(err))
		metrics.SlideTransitionsTotal.WithLabelValues("invalid", metrics.Status(err)).Inc()
		return c.state, err
	}

	start := time.Now()
	next := State{
		Slide:   n,
		Nav:     navFor(c.deck.Len(), n),
		Caption: spec.Caption,
	}

	next.Render, err = c.renderer.Render(ctx, c.container, spec.Dataset, spec.ChartTitle)
	if err == nil {
		err = c.overlay.Apply(c.container, n)
	}
	if err != nil {
		err = fmt.Errorf("slide %d: %w", n, err)
		next.Err = err
		c.logger.Error("slide render failed", zap.Int("slide", n), zap.String("dataset", spec.Dataset), zap.Error(err))
	} else {
		c.logger.Info("slide entered", zap.Int("slide", n), zap.String("title", spec.ChartTitle))
	}
	c.state = next

	metrics.RenderDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	metrics.SlideTransitionsTotal.WithLabelValues(label, metrics.Status(err)).Inc()
	return next, err
}

// Current returns the state of the last accepted transition.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Container is the element the controller draws into.
func (c *Controller) Container() *scene.Container { return c.container }

// Deck is the slide table the controller navigates.
func (c *Controller) Deck() *deck.Deck { return c.deck }

// IsUnrecognizedSlide reports whether err rejects a slide number.
func IsUnrecognizedSlide(err error) bool {
	var slideErr *deck.UnrecognizedSlideError
	return errors.As(err, &slideErr)
}

func navFor(count, selected int) []NavButton {
	nav := make([]NavButton, count)
	for i := range nav {
		nav[i] = NavButton{ID: fmt.Sprintf("nav-button-%d", i+1), Slide: i + 1, Class: ClassUnselected}
		if i+1 == selected {
			nav[i].Class = ClassSelected
		}
	}
	return nav
}
