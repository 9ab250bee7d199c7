package scene

import (
	"glview/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSetter is the part of a shader program the scene pass writes to
type UniformSetter interface {
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// Light is a point light with a direction, uploaded unchanged every frame
type Light struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3

	// Attenuation: constant, linear, quadratic
	Kc, Kl, Kq float32
}

// DefaultLight returns the light the viewer renders with
func DefaultLight() Light {
	return Light{
		Position:  mgl32.Vec3{-1, 1, 5},
		Direction: mgl32.Vec3{-1, -1, -1},
		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.8, 0.8, 0.8},
		Specular:  mgl32.Vec3{1, 1, 1},
		Kc:        1.0,
		Kl:        0.09,
		Kq:        0.032,
	}
}

// Shininess is the material exponent for every mesh
const Shininess float32 = 6.0

// Apply writes the light and material uniforms.
//
// view_pos receives the light position, not the eye position; specular
// highlights are computed relative to the light.
func (l Light) Apply(s UniformSetter) {
	s.SetVec3("view_pos", l.Position)
	s.SetVec3("light.direction", l.Direction)
	s.SetVec3("light.position", l.Position)
	s.SetVec3("light.ambient", l.Ambient)
	s.SetVec3("light.diffuse", l.Diffuse)
	s.SetVec3("light.specular", l.Specular)
	s.SetFloat("material.shininess", Shininess)

	s.SetFloat("light.kc", l.Kc)
	s.SetFloat("light.kl", l.Kl)
	s.SetFloat("light.kq", l.Kq)
}

// Transforms are the per-frame matrices of the scene pass
type Transforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// NewTransforms derives the matrices from the camera for a target of the given size
func NewTransforms(cam *camera.State, width, height int) Transforms {
	return Transforms{
		Model:      camera.ModelMatrix(),
		View:       cam.ViewMatrix(),
		Projection: camera.Projection(width, height),
	}
}

// MVP returns projection * view * model
func (t Transforms) MVP() mgl32.Mat4 {
	return t.Projection.Mul4(t.View).Mul4(t.Model)
}

// Apply writes view, model, projection and their product as transform
func (t Transforms) Apply(s UniformSetter) {
	s.SetMat4("view", t.View)
	s.SetMat4("model", t.Model)
	s.SetMat4("projection", t.Projection)
	s.SetMat4("transform", t.MVP())
}
