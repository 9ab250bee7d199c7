package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// quadVertices covers the viewport with two triangles: position(2) texcoord(2)
var quadVertices = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, -1, 1, 0,

	-1, 1, 0, 1,
	1, -1, 1, 0,
	1, 1, 1, 1,
}

// ScreenQuad is the full-screen geometry of the post-processing pass
type ScreenQuad struct {
	vao *VAO
	vbo *VBO
}

// NewScreenQuad uploads the quad with position at location 0 and texcoord at 1
func NewScreenQuad() *ScreenQuad {
	q := &ScreenQuad{
		vao: NewVAO(),
		vbo: NewVBO(quadVertices),
	}
	q.vao.Bind()
	q.vao.LinkPosTex(q.vbo, 0, 1)
	q.vao.Unbind()
	return q
}

// Draw samples texture on unit 0 across the whole target. The caller binds the shader.
func (q *ScreenQuad) Draw(texture uint32) {
	q.vao.Bind()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quadVertices)/LayoutPosTex.Stride))
	q.vao.Unbind()
}

func (q *ScreenQuad) Delete() {
	q.vao.Delete()
	q.vbo.Delete()
}
