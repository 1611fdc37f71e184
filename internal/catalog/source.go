package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/storage"
)

// Source is a read-only location of the catalog document.
type Source interface {
	// Open returns a reader over the raw document. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path)
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// HTTPSource fetches the catalog with a GET request. Non-2xx responses fail.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", s.URL, resp.Status)
	}

	return resp.Body, nil
}

func (s HTTPSource) String() string {
	return s.URL
}

// BlobSource downloads the catalog from the configured blob container.
type BlobSource struct {
	Storage storage.System
	Key     string
}

func (s BlobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.Storage.Download(ctx, s.Key)
}

func (s BlobSource) String() string {
	return "blob:" + s.Key
}

// ParseSource resolves a configured source reference:
//
//	blob:<key>          blob in the storage container (requires store)
//	http(s)://...       remote document
//	file:<path>, <path> local file
func ParseSource(ref string, store storage.System, client *http.Client) (Source, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("catalog source required")
	case strings.HasPrefix(ref, "blob:"):
		if store == nil {
			return nil, fmt.Errorf("catalog source %s: %w", ref, storage.ErrNotConfigured)
		}
		return BlobSource{Storage: store, Key: strings.TrimPrefix(ref, "blob:")}, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return HTTPSource{URL: ref, Client: client}, nil
	default:
		return FileSource{Path: strings.TrimPrefix(ref, "file:")}, nil
	}
}
