// Package deck holds the fixed slide table: which dataset each slide
// charts, its titles and the callouts drawn over it.
package deck

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnnotationSpec is a fixed callout in viewbox coordinates: a subject point
// at (X, Y) with its note offset by (DX, DY).
type AnnotationSpec struct {
	Title string  `yaml:"title"`
	Label string  `yaml:"label"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
	Color string  `yaml:"color"`
}

// SlideSpec describes one slide.
type SlideSpec struct {
	Number      int              `yaml:"number"`
	Dataset     string           `yaml:"dataset"`
	ChartTitle  string           `yaml:"chart_title"`
	Caption     string           `yaml:"caption"`
	Annotations []AnnotationSpec `yaml:"annotations"`
}

// UnrecognizedSlideError reports a slide number outside the deck.
type UnrecognizedSlideError struct {
	Number int
	Count  int
}

func (e *UnrecognizedSlideError) Error() string {
	return fmt.Sprintf("no slide with number %d (deck has slides 1-%d)", e.Number, e.Count)
}

// Deck is an immutable, ordered set of slides numbered 1..N.
type Deck struct {
	slides []SlideSpec
}

// New validates slides and returns a deck. Slides must be numbered 1..N
// in order and each must name a dataset.
func New(slides []SlideSpec) (*Deck, error) {
	if len(slides) == 0 {
		return nil, errors.New("deck has no slides")
	}
	d := &Deck{slides: make([]SlideSpec, len(slides))}
	for i, s := range slides {
		if s.Number != i+1 {
			return nil, fmt.Errorf("slide %d is numbered %d, want %d", i+1, s.Number, i+1)
		}
		if s.Dataset == "" {
			return nil, fmt.Errorf("slide %d has no dataset", s.Number)
		}
		s = copySlide(s)
		for j, a := range s.Annotations {
			if a.Color == "" {
				s.Annotations[j].Color = "red"
			}
		}
		d.slides[i] = s
	}
	return d, nil
}

// LoadFile reads a YAML deck of the form {slides: [...]}.
func LoadFile(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	var doc struct {
		Slides []SlideSpec `yaml:"slides"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	return New(doc.Slides)
}

// Len is the number of slides.
func (d *Deck) Len() int { return len(d.slides) }

// Slide returns a copy of slide n or an *UnrecognizedSlideError.
func (d *Deck) Slide(n int) (SlideSpec, error) {
	if n < 1 || n > len(d.slides) {
		return SlideSpec{}, &UnrecognizedSlideError{Number: n, Count: len(d.slides)}
	}
	return copySlide(d.slides[n-1]), nil
}

// Slides returns copies of every slide in order.
func (d *Deck) Slides() []SlideSpec {
	out := make([]SlideSpec, len(d.slides))
	for i, s := range d.slides {
		out[i] = copySlide(s)
	}
	return out
}

// MarshalYAML writes the deck in the form LoadFile reads.
func (d *Deck) MarshalYAML() (interface{}, error) {
	return struct {
		Slides []SlideSpec `yaml:"slides"`
	}{d.Slides()}, nil
}

func copySlide(s SlideSpec) SlideSpec {
	s.Annotations = append([]AnnotationSpec(nil), s.Annotations...)
	return s
}
