package model

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// TextureKind is the role a texture plays in the scene shader
type TextureKind string

const (
	TextureDiffuse  TextureKind = "diffuse"
	TextureSpecular TextureKind = "specular"
	TextureNormal   TextureKind = "normal"
)

// TextureRef points at a texture either on disk (Path) or already decoded
// (Image, for images embedded in the asset). Key identifies it in the texture cache.
type TextureRef struct {
	Kind  TextureKind
	Path  string
	Key   string
	Image *image.RGBA
}

// MeshData is one drawable submesh in CPU memory. Vertices use the
// position(3) normal(3) texcoord(2) layout.
type MeshData struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Textures []TextureRef
}

// VertexCount returns the number of interleaved vertices
func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / vertexStride
}

// Data is a parsed asset
type Data struct {
	Path   string
	Meshes []MeshData
}

const vertexStride = 8

// Load parses an asset file. The format is chosen by extension. Problems that
// do not stop the load, such as skipped primitives, are logged as warnings.
func Load(path string, log *zap.Logger) (*Data, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path, log)
	case ".gltf", ".glb":
		return LoadGLTF(path, log)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

// samplerNames returns the uniform name each texture is bound to, in order:
// material.texture_<kind><n> with n counting from 1 per kind.
func samplerNames(textures []TextureRef) []string {
	counts := make(map[TextureKind]int, 3)
	names := make([]string, len(textures))
	for i, t := range textures {
		counts[t.Kind]++
		names[i] = "material.texture_" + string(t.Kind) + strconv.Itoa(counts[t.Kind])
	}
	return names
}
