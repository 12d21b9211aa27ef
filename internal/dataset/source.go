package dataset

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Source resolves a dataset reference such as "scene1.csv" to its bytes.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// FSSource reads datasets from a file system: the embedded defaults or a
// directory via os.DirFS.
type FSSource struct {
	FS fs.FS
}

// Open implements Source.
func (s FSSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(ref) {
		return nil, fmt.Errorf("invalid dataset path %q", ref)
	}
	return s.FS.Open(ref)
}

// HTTPSource fetches datasets relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns an HTTPSource whose client gives up after timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	u.Path = path.Join(u.Path, ref)
	if strings.HasSuffix(ref, "/") {
		u.Path += "/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", u.String(), resp.Status)
	}
	return resp.Body, nil
}
