package scene

import (
	"testing"

	"glview/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

type recorder struct {
	ints   map[string]int32
	floats map[string]float32
	vecs   map[string]mgl32.Vec3
	mats   map[string]mgl32.Mat4
}

func newRecorder() *recorder {
	return &recorder{
		ints:   map[string]int32{},
		floats: map[string]float32{},
		vecs:   map[string]mgl32.Vec3{},
		mats:   map[string]mgl32.Mat4{},
	}
}

func (r *recorder) SetInt(name string, v int32) { r.ints[name] = v }
func (r *recorder) SetFloat(name string, v float32) { r.floats[name] = v }
func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vecs[name] = v }
func (r *recorder) SetMat4(name string, m mgl32.Mat4) { r.mats[name] = m }

func TestLightUniforms(t *testing.T) {
	rec := newRecorder()
	DefaultLight().Apply(rec)

	vecs := map[string]mgl32.Vec3{
		"view_pos":        {-1, 1, 5},
		"light.position":  {-1, 1, 5},
		"light.direction": {-1, -1, -1},
		"light.ambient":   {0.2, 0.2, 0.2},
		"light.diffuse":   {0.8, 0.8, 0.8},
		"light.specular":  {1, 1, 1},
	}
	for name, want := range vecs {
		got, ok := rec.vecs[name]
		if !ok {
			t.Errorf("Uniform %s not set", name)
			continue
		}
		if got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	floats := map[string]float32{
		"material.shininess": 6,
		"light.kc":           1,
		"light.kl":           0.09,
		"light.kq":           0.032,
	}
	for name, want := range floats {
		if got, ok := rec.floats[name]; !ok || got != want {
			t.Errorf("%s = %v (set=%v), want %v", name, got, ok, want)
		}
	}
}

func TestTransformUniforms(t *testing.T) {
	cam := camera.New(800, 800)
	cam.AngleX = 0.3
	cam.AngleY = -0.2

	tr := NewTransforms(cam, 800, 800)
	rec := newRecorder()
	tr.Apply(rec)

	for _, name := range []string{"view", "model", "projection", "transform"} {
		if _, ok := rec.mats[name]; !ok {
			t.Errorf("Uniform %s not set", name)
		}
	}

	want := rec.mats["projection"].Mul4(rec.mats["view"]).Mul4(rec.mats["model"])
	if !rec.mats["transform"].ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("transform != projection*view*model")
	}
	if !rec.mats["view"].ApproxEqualThreshold(cam.ViewMatrix(), 1e-6) {
		t.Errorf("view does not come from the camera")
	}
}
