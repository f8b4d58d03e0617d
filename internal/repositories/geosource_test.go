package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueprint/config"
)

func TestNewGeoSource(t *testing.T) {
	src, err := NewGeoSource(config.GeoJSONConfig{Source: config.GeoSourceEmbedded}, nil)
	require.NoError(t, err)
	assert.Equal(t, "embedded:routes.geojson", src.Name())

	src, err = NewGeoSource(config.GeoJSONConfig{Source: config.GeoSourceFile, Path: "/srv/routes.geojson"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:/srv/routes.geojson", src.Name())

	src, err = NewGeoSource(config.GeoJSONConfig{Source: config.GeoSourceHTTP, URL: "https://cdn.example.test/routes.geojson"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http:https://cdn.example.test/routes.geojson", src.Name())

	_, err = NewGeoSource(config.GeoJSONConfig{Source: "s3"}, nil)
	assert.Error(t, err)
}

func TestEmbeddedGeoSource_ReadsBundledDocument(t *testing.T) {
	src, err := NewGeoSource(config.GeoJSONConfig{}, nil)
	require.NoError(t, err)

	data, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
}

func TestEmbeddedGeoSource_MissingFile(t *testing.T) {
	src := NewEmbeddedGeoSource(fstest.MapFS{}, "absent.geojson")

	_, err := src.Read(context.Background())
	assert.Error(t, err)
}

func TestFileGeoSource_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[]}`), 0o600))

	data, err := (&FileGeoSource{Path: path}).Read(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))

	_, err = (&FileGeoSource{Path: filepath.Join(t.TempDir(), "missing.geojson")}).Read(context.Background())
	assert.Error(t, err)
}

func TestHTTPGeoSource_Read(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/routes.geojson" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	src := &HTTPGeoSource{URL: server.URL + "/routes.geojson", httpClient: server.Client()}
	data, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")

	missing := &HTTPGeoSource{URL: server.URL + "/missing.geojson", httpClient: server.Client()}
	_, err = missing.Read(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, http.StatusNotFound, nerr.StatusCode)
}
