package repositories

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"blueprint/assets"
	"blueprint/config"
)

// NewGeoSource picks the GeoJSON byte source named by cfg.Source.
func NewGeoSource(cfg config.GeoJSONConfig, httpClient HTTPClient) (GeoSource, error) {
	switch cfg.Source {
	case config.GeoSourceEmbedded, "":
		return NewEmbeddedGeoSource(assets.FS, assets.RoutesFile), nil
	case config.GeoSourceFile:
		return &FileGeoSource{Path: cfg.Path}, nil
	case config.GeoSourceHTTP:
		if httpClient == nil {
			httpClient = &http.Client{}
		}
		return &HTTPGeoSource{URL: cfg.URL, httpClient: httpClient}, nil
	}

	return nil, fmt.Errorf("unknown geojson source %q", cfg.Source)
}

type EmbeddedGeoSource struct {
	fsys fs.FS
	name string
}

func NewEmbeddedGeoSource(fsys fs.FS, name string) *EmbeddedGeoSource {
	return &EmbeddedGeoSource{fsys: fsys, name: name}
}

func (e *EmbeddedGeoSource) Name() string {
	return "embedded:" + e.name
}

func (e *EmbeddedGeoSource) Read(context.Context) ([]byte, error) {
	data, err := fs.ReadFile(e.fsys, e.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", e.name, err)
	}
	return data, nil
}

type FileGeoSource struct {
	Path string
}

func (f *FileGeoSource) Name() string {
	return "file:" + f.Path
}

func (f *FileGeoSource) Read(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return data, nil
}

type HTTPGeoSource struct {
	URL        string
	httpClient HTTPClient
}

func (h *HTTPGeoSource) Name() string {
	return "http:" + h.URL
}

func (h *HTTPGeoSource) Read(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &NetworkError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("HTTP error (status %d)", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return data, nil
}
