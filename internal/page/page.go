// Package page writes the HTML document for one slide: navigation buttons,
// caption, the chart surface inline and the tooltip script that drives
// hover on the bars.
package page

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/buffos/go-narrative/internal/scene"
	"github.com/buffos/go-narrative/internal/slides"
)

// Options control links and document chrome.
type Options struct {
	// NavHref maps a slide number to its link. Nil links to "#slide-N".
	NavHref func(slide int) string
	// Title is the document title; empty uses the chart title.
	Title string
}

var captionPolicy = bluemonday.UGCPolicy()

// Render writes the page for st. The chart comes from c; when c holds no
// surface (a failed render) the chart container is left empty and the
// error from st is shown in its place.
func Render(w io.Writer, st slides.State, c *scene.Container, opts Options) error {
	var htmlBuilder strings.Builder

	title := opts.Title
	if title == "" && st.Render != nil {
		title = st.Render.Title
	}
	if title == "" {
		title = fmt.Sprintf("Slide %d", st.Slide)
	}

	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	htmlBuilder.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	htmlBuilder.WriteString("<style>\n")
	htmlBuilder.WriteString(pageCSS)
	htmlBuilder.WriteString(scene.Stylesheet)
	htmlBuilder.WriteString("</style>\n</head>\n<body>\n")

	htmlBuilder.WriteString("<div id=\"nav\">\n")
	for _, b := range st.Nav {
		href := fmt.Sprintf("#slide-%d", b.Slide)
		if opts.NavHref != nil {
			href = opts.NavHref(b.Slide)
		}
		htmlBuilder.WriteString(fmt.Sprintf("  <a id=\"%s\" class=\"%s\" href=\"%s\">%d</a>\n",
			html.EscapeString(b.ID), html.EscapeString(b.Class), html.EscapeString(href), b.Slide))
	}
	htmlBuilder.WriteString("</div>\n")

	htmlBuilder.WriteString(fmt.Sprintf("<h2 id=\"slide-title\">%s</h2>\n", captionPolicy.Sanitize(st.Caption)))

	htmlBuilder.WriteString("<div id=\"chart_div\">\n")
	if surface, err := c.Surface(); err == nil {
		htmlBuilder.WriteString(surface.SVG(scene.WriteOptions{}))
	} else if st.Err != nil {
		htmlBuilder.WriteString(fmt.Sprintf("<p class=\"chart-error\">%s</p>\n", html.EscapeString(st.Err.Error())))
	}
	htmlBuilder.WriteString("</div>\n")

	htmlBuilder.WriteString(tooltipDiv(c.Tooltip()))
	htmlBuilder.WriteString("<script>\n")
	htmlBuilder.WriteString(hoverScript)
	htmlBuilder.WriteString("</script>\n")
	htmlBuilder.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, htmlBuilder.String())
	return err
}

func tooltipDiv(tip *scene.Tooltip) string {
	style := "opacity: 0;"
	var body string
	if tip != nil {
		style = fmt.Sprintf("opacity: %g; left: %gpx; top: %gpx;", tip.Opacity, tip.Left, tip.Top)
		lines := tip.Lines()
		for i := range lines {
			lines[i] = html.EscapeString(lines[i])
		}
		body = strings.Join(lines, "<br>")
	}
	return fmt.Sprintf("<div class=\"tooltip\" style=\"%s\">%s</div>\n", style, body)
}

const pageCSS = `body { margin: 0; padding: 40px; font-family: Arial, sans-serif; }
#nav { margin-bottom: 12px; }
.nav-button, .nav-button-select { display: inline-block; width: 28px; height: 28px; line-height: 28px; margin-right: 6px; border-radius: 14px; text-align: center; text-decoration: none; }
.nav-button { background-color: #eee; color: #333; }
.nav-button-select { background-color: #0073BB; color: #fff; }
#slide-title { font-size: 18px; font-weight: normal; max-width: 720px; }
#chart_div { max-width: 900px; }
.chart-error { color: #a00; }
.tooltip { position: absolute; background-color: white; border: solid; border-width: 1px; border-radius: 5px; padding: 10px; pointer-events: none; font-size: 12px; }
`

const hoverScript = `(function () {
  var tooltip = document.querySelector(".tooltip");
  document.querySelectorAll("#chart_svg .bar").forEach(function (bar) {
    bar.addEventListener("mouseover", function () {
      tooltip.style.opacity = 0.9;
      bar.style.opacity = 0.6;
    });
    bar.addEventListener("mousemove", function (event) {
      tooltip.innerText = bar.getAttribute("data-tooltip");
      tooltip.style.top = (event.pageY - 10) + "px";
      tooltip.style.left = (event.pageX + 10) + "px";
    });
    bar.addEventListener("mouseleave", function () {
      tooltip.style.opacity = 0;
      bar.style.opacity = 1;
    });
  });
})();
`
