package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/config"
	"github.com/buffos/go-narrative/internal/dataset"
	"github.com/buffos/go-narrative/internal/deck"
	"github.com/buffos/go-narrative/internal/export"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		renderOutput = ""
		exportFormats = []string{"svg", "html"}
		slidesYAML = false
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewSource(t *testing.T) {
	c := &config.Config{}
	_, ok := newSource(c).(dataset.FSSource)
	assert.True(t, ok)

	c.Data.Dir = t.TempDir()
	_, ok = newSource(c).(dataset.FSSource)
	assert.True(t, ok)

	c.Data.BaseURL = "https://example.org/data/"
	src, ok := newSource(c).(*dataset.HTTPSource)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/data/", src.BaseURL)
}

func TestStartControllerEntersFirstSlide(t *testing.T) {
	ctrl := startController(context.Background(), &config.Config{}, deck.Default(), zap.NewNop())
	st := ctrl.Current()
	assert.Equal(t, 1, st.Slide)
	assert.NoError(t, st.Err)
	assert.Equal(t, 1, ctrl.Container().Surfaces())

	broken := &config.Config{}
	broken.Data.Dir = t.TempDir()
	ctrl = startController(context.Background(), broken, deck.Default(), zap.NewNop())
	st = ctrl.Current()
	assert.Equal(t, 1, st.Slide)
	var loadErr *dataset.DataLoadError
	assert.ErrorAs(t, st.Err, &loadErr)
}

func TestWriteSlideWithoutBrowser(t *testing.T) {
	c := &config.Config{}
	ctrl := newController(c, deck.Default(), nil)

	var buf bytes.Buffer
	require.NoError(t, writeSlide(context.Background(), ctrl, nil, 1, export.SVG, &buf))
	assert.Contains(t, buf.String(), "Time Spent by Activity")

	err := writeSlide(context.Background(), ctrl, nil, 1, export.PNG, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a browser")
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slide2.html")
	_, err := execute(t, "render", "2", "html", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.Equal(t, "nav-button-2", doc.Find(".nav-button-select").AttrOr("id", ""))
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, "render", "3", "svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "Time Spent by Leisure Activity")
}

func TestRenderCommandRejectsInput(t *testing.T) {
	_, err := execute(t, "render", "4", "svg")
	require.Error(t, err)
	var slideErr *deck.UnrecognizedSlideError
	assert.ErrorAs(t, err, &slideErr)

	_, err = execute(t, "render", "1", "gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")

	_, err = execute(t, "render", "one", "svg")
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := execute(t, "export", dir)
	require.NoError(t, err)

	for n := 1; n <= 3; n++ {
		for _, ext := range []string{"svg", "html"} {
			name := filepath.Join(dir, fmt.Sprintf("slide%d.%s", n, ext))
			info, err := os.Stat(name)
			require.NoError(t, err, name)
			assert.Positive(t, info.Size())
			assert.Contains(t, out, "[OK] wrote "+name)
		}
	}
}

func TestSlidesCommand(t *testing.T) {
	out, err := execute(t, "slides")
	require.NoError(t, err)
	assert.Contains(t, out, "scene1.csv")
	assert.Contains(t, out, "Time Worked by Gender")
	assert.Contains(t, out, "Relaxing and Thinking")
	assert.Contains(t, out, "Post-Pandemic (2022)")
	assert.Contains(t, out, "#8EBFFE")
}

func TestSlidesCommandYAML(t *testing.T) {
	out, err := execute(t, "slides", "--yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	d, err := deck.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, deck.Default().Slides(), d.Slides())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (testing.T.Chdir is unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
