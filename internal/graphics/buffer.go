package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// Attribute describes one float attribute inside an interleaved vertex
type Attribute struct {
	Components int32
	Offset     int // in floats
}

// Layout is an interleaved vertex format
type Layout struct {
	Stride     int // in floats
	Attributes []Attribute
}

// The three vertex formats the viewer uses
var (
	// LayoutPosNormalTex is position(3) normal(3) texcoord(2), used by model meshes
	LayoutPosNormalTex = Layout{Stride: 8, Attributes: []Attribute{{3, 0}, {3, 3}, {2, 6}}}
	// LayoutPosColor is position(3) color(3)
	LayoutPosColor = Layout{Stride: 6, Attributes: []Attribute{{3, 0}, {3, 3}}}
	// LayoutPosTex is position(2) texcoord(2), used by the screen quad
	LayoutPosTex = Layout{Stride: 4, Attributes: []Attribute{{2, 0}, {2, 2}}}
)

// StrideBytes returns the vertex stride in bytes
func (l Layout) StrideBytes() int32 {
	return int32(l.Stride * floatSize)
}

// OffsetBytes returns the byte offset of attribute i
func (l Layout) OffsetBytes(i int) int {
	return l.Attributes[i].Offset * floatSize
}

// VBO owns a GL array buffer
type VBO struct {
	ID uint32
}

// NewVBO uploads vertices into a new static array buffer
func NewVBO(vertices []float32) *VBO {
	v := &VBO{}
	gl.GenBuffers(1, &v.ID)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.ID)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return v
}

func (v *VBO) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, v.ID) }
func (v *VBO) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

func (v *VBO) Delete() {
	gl.DeleteBuffers(1, &v.ID)
	v.ID = 0
}

// EBO owns a GL element array buffer. It must be created while the VAO it
// belongs to is bound, since the binding is recorded in the VAO.
type EBO struct {
	ID    uint32
	Count int32
}

// NewEBO uploads indices into the element buffer of the currently bound VAO
func NewEBO(indices []uint32) *EBO {
	e := &EBO{Count: int32(len(indices))}
	gl.GenBuffers(1, &e.ID)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.ID)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}
	return e
}

func (e *EBO) Delete() {
	gl.DeleteBuffers(1, &e.ID)
	e.ID = 0
}

// VAO owns a GL vertex array object
type VAO struct {
	ID uint32
}

func NewVAO() *VAO {
	v := &VAO{}
	gl.GenVertexArrays(1, &v.ID)
	return v
}

func (v *VAO) Bind()   { gl.BindVertexArray(v.ID) }
func (v *VAO) Unbind() { gl.BindVertexArray(0) }

func (v *VAO) Delete() {
	gl.DeleteVertexArrays(1, &v.ID)
	v.ID = 0
}

// Link describes vbo's layout on the attribute locations, one per layout attribute.
// The VAO must be bound.
func (v *VAO) Link(vbo *VBO, layout Layout, locations ...uint32) {
	vbo.Bind()
	stride := layout.StrideBytes()
	for i, attr := range layout.Attributes {
		if i >= len(locations) {
			break
		}
		loc := locations[i]
		gl.VertexAttribPointer(loc, attr.Components, gl.FLOAT, false, stride, gl.PtrOffset(layout.OffsetBytes(i)))
		gl.EnableVertexAttribArray(loc)
	}
	vbo.Unbind()
}

// LinkPosNormalTex links an 8-float position/normal/texcoord buffer
func (v *VAO) LinkPosNormalTex(vbo *VBO, posLoc, normalLoc, texLoc uint32) {
	v.Link(vbo, LayoutPosNormalTex, posLoc, normalLoc, texLoc)
}

// LinkPosColor links a 6-float position/color buffer
func (v *VAO) LinkPosColor(vbo *VBO, posLoc, colorLoc uint32) {
	v.Link(vbo, LayoutPosColor, posLoc, colorLoc)
}

// LinkPosTex links a 4-float position/texcoord buffer
func (v *VAO) LinkPosTex(vbo *VBO, posLoc, texLoc uint32) {
	v.Link(vbo, LayoutPosTex, posLoc, texLoc)
}
