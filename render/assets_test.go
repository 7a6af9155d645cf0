package render

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestAssetCacheImageFromURL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(pngBytes(t, 4, 6))
	}))
	defer srv.Close()

	cache := NewAssetCache()
	a := cache.Image(srv.URL + "/logo.png")
	require.NotNil(t, a)
	assert.Equal(t, "PNG", a.Format)
	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 6, a.Height)

	// Second reference hits the cache, not the network.
	b := cache.Image(srv.URL + "/logo.png")
	assert.Same(t, a, b)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestAssetCacheImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 10, 3), 0o644))

	cache := NewAssetCache()
	a := cache.Image(path)
	require.NotNil(t, a)
	assert.Equal(t, 10, a.Width)
	assert.Equal(t, 3, a.Height)
}

func TestAssetCacheImageFailureIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cache := NewAssetCache()
	assert.Nil(t, cache.Image(srv.URL+"/missing.png"))
	assert.Nil(t, cache.Image(""))
	assert.Nil(t, cache.Image(filepath.Join(t.TempDir(), "nope.png")))
}

func TestAssetCacheUndecodableIsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	cache := NewAssetCache()
	assert.Nil(t, cache.Image(path))
}

func TestAssetCacheBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	payload := []byte("\x00\x01\x00\x00fontdata")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	cache := NewAssetCache()
	assert.Equal(t, payload, cache.Bytes(path))
	assert.Nil(t, cache.Bytes(""))
}

func TestFitScale(t *testing.T) {
	// Shrinks to the tighter axis.
	assert.InDelta(t, 0.5, FitScale(200, 100, 100, 100), 1e-9)
	assert.InDelta(t, 0.25, FitScale(100, 400, 100, 100), 1e-9)
	// Never upscales.
	assert.Equal(t, 1.0, FitScale(10, 10, 100, 100))
	// Degenerate input.
	assert.Equal(t, 0.0, FitScale(0, 10, 100, 100))
}

func TestLooksLikeTTF(t *testing.T) {
	assert.True(t, looksLikeTTF([]byte("\x00\x01\x00\x00rest")))
	assert.True(t, looksLikeTTF([]byte("OTTOrest")))
	assert.False(t, looksLikeTTF([]byte("<html>")))
	assert.False(t, looksLikeTTF(nil))
}
