// Package scene describes a chart as plain shapes with computed geometry
// and writes that description out as SVG. Geometry is decided by the chart
// and annotation packages; this package only holds and serialises it.
package scene

// Shape is any element that can be placed on a surface.
type Shape interface {
	shape()
}

// Translate is an SVG translate(x, y) transform.
type Translate struct {
	X, Y float64
}

// Group holds children under an optional translation.
type Group struct {
	ID        string
	Class     string
	Transform *Translate
	Children  []Shape
}

// Add appends shapes and returns the group for chaining.
func (g *Group) Add(shapes ...Shape) *Group {
	g.Children = append(g.Children, shapes...)
	return g
}

// Rect is a filled rectangle. Opacity 0 means fully opaque; Data carries
// data-* attributes for the page script.
type Rect struct {
	ID      string
	Class   string
	X, Y    float64
	Width   float64
	Height  float64
	Fill    string
	Opacity float64
	Data    map[string]string
}

// Text is a single text element. When Lines is set each entry becomes a
// tspan placed LineHeight below the previous one.
type Text struct {
	Class      string
	X, Y       float64
	DY         string
	Anchor     string
	Fill       string
	FontSize   float64
	FontWeight string
	Content    string
	Lines      []string
	LineHeight float64
}

// Line is a straight stroke.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

// Circle is a filled circle.
type Circle struct {
	Class  string
	CX, CY float64
	R      float64
	Fill   string
	Stroke string
}

func (*Group) shape()  {}
func (*Rect) shape()   {}
func (*Text) shape()   {}
func (*Line) shape()   {}
func (*Circle) shape() {}
