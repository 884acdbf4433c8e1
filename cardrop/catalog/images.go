package catalog

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru"
)

const defaultImageCacheSize = 128

// ImageCache keeps recently served card images in memory so hot cards are
// not re-read from disk on every draw.
type ImageCache struct {
	cache *lru.Cache
}

func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = defaultImageCacheSize
	}
	cache, _ := lru.New(size)
	return &ImageCache{cache: cache}
}

// Bytes returns the image contents for the given card, filling the cache on
// a miss.
func (c *ImageCache) Bytes(card *Card) ([]byte, error) {
	if cached, ok := c.cache.Get(card.ID); ok {
		return cached.([]byte), nil
	}

	data, err := os.ReadFile(card.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read card image %s: %w", card.FilePath, err)
	}

	c.cache.Add(card.ID, data)
	return data, nil
}

// Purge drops all cached images. Called together with Loader.Invalidate so a
// reloaded catalog never serves stale files.
func (c *ImageCache) Purge() {
	c.cache.Purge()
}
