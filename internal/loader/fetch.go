package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// ErrResourceUnavailable is returned when a section resource cannot be
// retrieved: missing file, transport failure, or a non-2xx response.
var ErrResourceUnavailable = errors.New("resource unavailable")

// Fetcher retrieves the raw bytes of a resource by path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSFetcher reads resources from a filesystem, usually os.DirFS of the
// sections directory.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path, "./")
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrResourceUnavailable, path, err)
	}
	return data, nil
}

// HTTPFetcher downloads resources over HTTP(S). No timeout or retry is
// applied beyond the caller's context.
type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", ErrResourceUnavailable, path, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrResourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: get %s: status %d", ErrResourceUnavailable, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body %s: %v", ErrResourceUnavailable, path, err)
	}
	return body, nil
}

// Router sends http and https paths to Remote and everything else to Local.
type Router struct {
	Local  Fetcher
	Remote Fetcher
}

func (r Router) Fetch(ctx context.Context, path string) ([]byte, error) {
	if isRemote(path) {
		if r.Remote == nil {
			return nil, fmt.Errorf("%w: no remote fetcher for %s", ErrResourceUnavailable, path)
		}
		return r.Remote.Fetch(ctx, path)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("%w: no local fetcher for %s", ErrResourceUnavailable, path)
	}
	return r.Local.Fetch(ctx, path)
}

func isRemote(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
