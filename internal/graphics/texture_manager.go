package graphics

import (
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureCache loads each texture path once and hands out the same GL id afterwards
type TextureCache struct {
	mu       sync.RWMutex
	textures map[string]uint32
	load     func(path string) (uint32, error)
}

// NewTextureCache returns a cache backed by LoadTexture
func NewTextureCache() *TextureCache {
	return newTextureCache(func(path string) (uint32, error) {
		tex, _, _, err := LoadTexture(path)
		return tex, err
	})
}

func newTextureCache(load func(string) (uint32, error)) *TextureCache {
	return &TextureCache{
		textures: make(map[string]uint32),
		load:     load,
	}
}

// Get returns a cached texture ID for the given path, loading it on first use.
func (c *TextureCache) Get(path string) (uint32, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}

	tex, err := c.load(path)
	if err != nil {
		return 0, err
	}

	c.textures[path] = tex
	return tex, nil
}

// Put uploads an already decoded image under key unless key is cached
func (c *TextureCache) Put(key string, rgba *image.RGBA) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tex, ok := c.textures[key]; ok {
		return tex
	}
	tex := UploadTexture(rgba)
	c.textures[key] = tex
	return tex
}

// Len returns the number of cached textures
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Delete releases every cached texture
func (c *TextureCache) Delete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, tex := range c.textures {
		gl.DeleteTextures(1, &tex)
		delete(c.textures, path)
	}
}
