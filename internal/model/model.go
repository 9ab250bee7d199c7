package model

import (
	"fmt"

	"glview/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Mesh is an uploaded submesh
type Mesh struct {
	Name     string
	vao      *graphics.VAO
	vbo      *graphics.VBO
	ebo      *graphics.EBO
	textures []uint32
	samplers []string
}

// Model is an uploaded asset: one draw call per mesh
type Model struct {
	Meshes []*Mesh
	cache  *graphics.TextureCache
}

// New parses the asset at path and uploads it. Needs a current GL context.
func New(path string, log *zap.Logger) (*Model, error) {
	data, err := Load(path, log)
	if err != nil {
		return nil, err
	}
	if len(data.Meshes) == 0 {
		return nil, fmt.Errorf("model %q has no meshes", path)
	}
	return Upload(data, log), nil
}

// Upload creates GPU buffers for every mesh in data. Textures that fail to
// load are logged and skipped; the mesh is drawn without them.
func Upload(data *Data, log *zap.Logger) *Model {
	m := &Model{cache: graphics.NewTextureCache()}

	for i := range data.Meshes {
		md := &data.Meshes[i]
		mesh := &Mesh{
			Name: md.Name,
			vao:  graphics.NewVAO(),
			vbo:  graphics.NewVBO(md.Vertices),
		}

		mesh.vao.Bind()
		mesh.ebo = graphics.NewEBO(md.Indices)
		mesh.vao.LinkPosNormalTex(mesh.vbo, 0, 1, 2)
		mesh.vao.Unbind()

		var loaded []TextureRef
		for _, ref := range md.Textures {
			var tex uint32
			if ref.Image != nil {
				tex = m.cache.Put(ref.Key, ref.Image)
			} else {
				var err error
				tex, err = m.cache.Get(ref.Path)
				if err != nil {
					log.Warn("texture failed to load", zap.String("mesh", md.Name), zap.Error(err))
					continue
				}
			}
			mesh.textures = append(mesh.textures, tex)
			loaded = append(loaded, ref)
		}
		mesh.samplers = samplerNames(loaded)

		m.Meshes = append(m.Meshes, mesh)
	}

	log.Info("model loaded",
		zap.String("path", data.Path),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("textures", m.cache.Len()))
	return m
}

// Draw binds each mesh's textures to consecutive units and issues one indexed
// draw call per mesh. The shader must be in use.
func (m *Model) Draw(shader *graphics.Shader) {
	for _, mesh := range m.Meshes {
		for i, tex := range mesh.textures {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
			shader.SetInt(mesh.samplers[i], int32(i))
			gl.BindTexture(gl.TEXTURE_2D, tex)
		}

		mesh.vao.Bind()
		gl.DrawElements(gl.TRIANGLES, mesh.ebo.Count, gl.UNSIGNED_INT, gl.PtrOffset(0))
		mesh.vao.Unbind()

		gl.ActiveTexture(gl.TEXTURE0)
	}
}

// Delete releases buffers and textures
func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.ebo.Delete()
		mesh.vbo.Delete()
		mesh.vao.Delete()
	}
	m.Meshes = nil
	m.cache.Delete()
}
