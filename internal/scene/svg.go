package scene

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Stylesheet styles the classes the chart and annotations use. Pages link
// it once; standalone SVG files embed it.
const Stylesheet = `
.chart-title { font: bold 12px Arial, sans-serif; fill: #222; }
.tooltip-instructions { font: italic 6px Arial, sans-serif; fill: #666; }
.chart-label { font: 8px Arial, sans-serif; fill: #333; }
.data-source, .data-footnote { font: 6px Arial, sans-serif; fill: #777; }
.legend { font: 7px Arial, sans-serif; fill: #333; }
.axis text { font: 8px Arial, sans-serif; fill: #333; }
.axis line.domain { stroke: #333; }
.grid line { stroke: #ddd; stroke-opacity: 0.7; }
.bar { cursor: pointer; }
.annotation text { font: 7px Arial, sans-serif; }
.annotation .annotation-note-title { font-weight: bold; }
`

// WriteOptions control how a surface is serialised.
type WriteOptions struct {
	// Standalone adds the XML namespace and the stylesheet so the file
	// renders on its own.
	Standalone bool
	// Background, when set, paints a full-size rectangle behind the chart.
	Background string
	// Scale, when positive, fixes the pixel size to the viewbox times Scale
	// instead of filling the parent element.
	Scale float64
}

// SVG returns the surface as an SVG document.
func (s *Surface) SVG(opts WriteOptions) string {
	var buf bytes.Buffer
	_ = s.WriteSVG(&buf, opts)
	return buf.String()
}

// WriteSVG serialises the surface to w.
func (s *Surface) WriteSVG(w io.Writer, opts WriteOptions) error {
	var svg bytes.Buffer
	svg.WriteString("<svg")
	if opts.Standalone {
		svg.WriteString(` xmlns="http://www.w3.org/2000/svg"`)
	}
	writeAttr(&svg, "id", s.ElementID)
	writeAttr(&svg, "data-surface", s.ID)
	if opts.Scale > 0 {
		writeNum(&svg, "width", s.Width*opts.Scale)
		writeNum(&svg, "height", s.Height*opts.Scale)
	} else {
		writeAttr(&svg, "width", "100%")
		writeAttr(&svg, "height", "100%")
	}
	writeAttr(&svg, "viewBox", fmt.Sprintf("0 0 %s %s", num(s.Width), num(s.Height)))
	writeAttr(&svg, "preserveAspectRatio", "xMinYMin")
	svg.WriteString(">\n")

	if opts.Standalone {
		svg.WriteString("<style>")
		svg.WriteString(Stylesheet)
		svg.WriteString("</style>\n")
	}
	if opts.Background != "" {
		fmt.Fprintf(&svg, `<rect width="%s" height="%s" fill="%s"/>`+"\n",
			num(s.Width), num(s.Height), escapeXML(opts.Background))
	}

	writeShape(&svg, s.Plot, 1)
	for _, g := range s.Overlay {
		writeShape(&svg, g, 1)
	}
	svg.WriteString("</svg>\n")

	_, err := w.Write(svg.Bytes())
	return err
}

func writeShape(svg *bytes.Buffer, sh Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := sh.(type) {
	case *Group:
		svg.WriteString(indent + "<g")
		writeAttr(svg, "id", v.ID)
		writeAttr(svg, "class", v.Class)
		if v.Transform != nil {
			writeAttr(svg, "transform", fmt.Sprintf("translate(%s,%s)", num(v.Transform.X), num(v.Transform.Y)))
		}
		if len(v.Children) == 0 {
			svg.WriteString("/>\n")
			return
		}
		svg.WriteString(">\n")
		for _, child := range v.Children {
			writeShape(svg, child, depth+1)
		}
		svg.WriteString(indent + "</g>\n")

	case *Rect:
		svg.WriteString(indent + "<rect")
		writeAttr(svg, "id", v.ID)
		writeAttr(svg, "class", v.Class)
		writeNum(svg, "x", v.X)
		writeNum(svg, "y", v.Y)
		writeNum(svg, "width", math.Max(0, v.Width))
		writeNum(svg, "height", math.Max(0, v.Height))
		writeAttr(svg, "fill", v.Fill)
		if v.Opacity > 0 && v.Opacity < 1 {
			writeAttr(svg, "style", "opacity: "+num(v.Opacity))
		}
		keys := make([]string, 0, len(v.Data))
		for k := range v.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeAttr(svg, "data-"+k, v.Data[k])
		}
		svg.WriteString("/>\n")

	case *Text:
		svg.WriteString(indent + "<text")
		writeAttr(svg, "class", v.Class)
		writeNum(svg, "x", v.X)
		writeNum(svg, "y", v.Y)
		writeAttr(svg, "dy", v.DY)
		writeAttr(svg, "text-anchor", v.Anchor)
		writeAttr(svg, "fill", v.Fill)
		if v.FontSize > 0 {
			writeNum(svg, "font-size", v.FontSize)
		}
		writeAttr(svg, "font-weight", v.FontWeight)
		svg.WriteString(">")
		if len(v.Lines) == 0 {
			svg.WriteString(escapeXML(v.Content))
		}
		for i, line := range v.Lines {
			svg.WriteString("<tspan")
			writeNum(svg, "x", v.X)
			if i > 0 {
				writeNum(svg, "dy", v.LineHeight)
			}
			svg.WriteString(">")
			svg.WriteString(escapeXML(line))
			svg.WriteString("</tspan>")
		}
		svg.WriteString("</text>\n")

	case *Line:
		svg.WriteString(indent + "<line")
		writeAttr(svg, "class", v.Class)
		writeNum(svg, "x1", v.X1)
		writeNum(svg, "y1", v.Y1)
		writeNum(svg, "x2", v.X2)
		writeNum(svg, "y2", v.Y2)
		writeAttr(svg, "stroke", v.Stroke)
		if v.StrokeWidth > 0 {
			writeNum(svg, "stroke-width", v.StrokeWidth)
		}
		svg.WriteString("/>\n")

	case *Circle:
		svg.WriteString(indent + "<circle")
		writeAttr(svg, "class", v.Class)
		writeNum(svg, "cx", v.CX)
		writeNum(svg, "cy", v.CY)
		writeNum(svg, "r", v.R)
		writeAttr(svg, "fill", v.Fill)
		writeAttr(svg, "stroke", v.Stroke)
		svg.WriteString("/>\n")
	}
}

func writeAttr(svg *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(svg, ` %s="%s"`, name, escapeXML(value))
}

func writeNum(svg *bytes.Buffer, name string, v float64) {
	fmt.Fprintf(svg, ` %s="%s"`, name, num(v))
}

// num prints coordinates with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
