package httpds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"csvsnapshot/internal/datasource"
)

// Remote is a datasource backed by one URL. The body is downloaded once, on
// the first call to Size or Open, and served from memory afterwards so that
// an empty response can be rejected before parsing.
type Remote struct {
	client *Client
	url    string

	once sync.Once
	body []byte
	err  error
}

var _ datasource.Source = (*Remote)(nil)

// NewRemote returns a Remote fetching url with c.
func NewRemote(c *Client, url string) *Remote {
	return &Remote{client: c, url: url}
}

// Name returns the URL.
func (r *Remote) Name() string { return r.url }

// Size downloads the body if needed and returns its length.
func (r *Remote) Size(ctx context.Context) (int64, error) {
	if err := r.fetch(ctx); err != nil {
		return 0, err
	}
	return int64(len(r.body)), nil
}

// Open downloads the body if needed and returns a reader over it.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := r.fetch(ctx); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(r.body)), nil
}

func (r *Remote) fetch(ctx context.Context) error {
	r.once.Do(func() {
		resp, err := r.client.Get(ctx, r.url)
		if err != nil {
			r.err = fmt.Errorf("GET %s: %w", r.url, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			r.err = fmt.Errorf("GET %s: unexpected status %s", r.url, resp.Status)
			return
		}
		r.body, r.err = io.ReadAll(resp.Body)
		if r.err != nil {
			r.err = fmt.Errorf("GET %s: read body: %w", r.url, r.err)
		}
	})
	return r.err
}
