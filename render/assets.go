package render

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Asset is a decoded, embeddable image: the raw bytes plus the natural
// pixel dimensions and the format name the PDF backend expects.
type Asset struct {
	Data   []byte
	Format string // "PNG", "JPG", "GIF"
	Width  int
	Height int
}

// AssetCache holds decoded assets keyed by their source locator so a
// logo or item photo is fetched and decoded once per process. It is safe
// for concurrent renders: inserts are idempotent, and when two renders
// decode the same source both results are identical, so either may win.
type AssetCache struct {
	mu      sync.RWMutex
	entries map[string]*Asset
	raw     map[string][]byte // undecoded payloads (fonts)
	client  *http.Client
}

// NewAssetCache creates an empty cache. One cache is meant to be owned by
// the hosting process and injected into every Renderer.
func NewAssetCache() *AssetCache {
	return &AssetCache{
		entries: make(map[string]*Asset),
		raw:     make(map[string][]byte),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Image returns the decoded asset for src, or nil when the source is
// empty, unreachable, or not a decodable image. Failures are never
// errors; callers degrade to a placeholder.
func (c *AssetCache) Image(src string) *Asset {
	key := strings.TrimSpace(src)
	if key == "" {
		return nil
	}

	c.mu.RLock()
	a, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return a
	}

	data := c.fetch(key)
	var asset *Asset
	if data != nil {
		if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			asset = &Asset{
				Data:   data,
				Format: pdfImageType(format),
				Width:  cfg.Width,
				Height: cfg.Height,
			}
		}
	}
	if asset == nil {
		// Decode failed; don't cache so a later upload under the same
		// locator gets another chance.
		return nil
	}

	c.mu.Lock()
	if prev, ok := c.entries[key]; ok {
		asset = prev
	} else {
		c.entries[key] = asset
	}
	c.mu.Unlock()
	return asset
}

// Bytes returns the raw payload for src without decoding, for assets
// that are not images (custom fonts). nil on any failure.
func (c *AssetCache) Bytes(src string) []byte {
	key := strings.TrimSpace(src)
	if key == "" {
		return nil
	}

	c.mu.RLock()
	b, ok := c.raw[key]
	c.mu.RUnlock()
	if ok {
		return b
	}

	data := c.fetch(key)
	if data == nil {
		return nil
	}

	c.mu.Lock()
	if prev, ok := c.raw[key]; ok {
		data = prev
	} else {
		c.raw[key] = data
	}
	c.mu.Unlock()
	return data
}

func (c *AssetCache) fetch(src string) []byte {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := c.client.Get(src)
		if err != nil {
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
		if err != nil {
			return nil
		}
		return data
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil
	}
	return data
}

func pdfImageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

// FitScale returns the factor that fits a natural w x h into the given
// bounding box without ever upscaling: min(maxW/w, maxH/h, 1).
func FitScale(w, h, maxW, maxH float64) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	s := 1.0
	if sw := maxW / w; sw < s {
		s = sw
	}
	if sh := maxH / h; sh < s {
		s = sh
	}
	return s
}
