package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestConvertAngle(t *testing.T) {
	tests := []struct {
		offset float32
		want   float32
	}{
		{0, 0},
		{800, FullTurn},
		{400, math.Pi},
		{200, math.Pi / 2},
		{-800, -FullTurn},
	}
	for _, tt := range tests {
		if got := ConvertAngle(tt.offset); !approx(got, tt.want) {
			t.Errorf("ConvertAngle(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestConvertAngleIsLinear(t *testing.T) {
	step := ConvertAngle(1)
	for _, off := range []float32{3, 17, 250, 799} {
		if got := ConvertAngle(off); !approx(got, step*off) {
			t.Errorf("ConvertAngle(%v) = %v, want %v", off, got, step*off)
		}
	}
}

func TestCursorRecentersReference(t *testing.T) {
	s := New(800, 600)
	cx, cy := s.Center()
	if cx != 400 || cy != 300 {
		t.Fatalf("Expected center (400,300), got (%v,%v)", cx, cy)
	}

	events := [][2]float64{{10, 20}, {799, 1}, {400, 300}, {-50, 900}}

	// Not rotating
	for _, e := range events {
		s.LastX, s.LastY = -1, -1
		s.HandleCursor(e[0], e[1])
		if s.LastX != cx || s.LastY != cy {
			t.Errorf("After cursor %v reference is (%v,%v), want center", e, s.LastX, s.LastY)
		}
	}

	// Rotating
	s.SetRotating(true)
	for _, e := range events {
		s.LastX, s.LastY = -1, -1
		s.HandleCursor(e[0], e[1])
		if s.LastX != cx || s.LastY != cy {
			t.Errorf("After cursor %v reference is (%v,%v), want center", e, s.LastX, s.LastY)
		}
	}
}

func TestCursorIgnoredWhenNotRotating(t *testing.T) {
	s := New(800, 800)
	s.HandleCursor(600, 100)
	if s.AngleX != 0 || s.AngleY != 0 {
		t.Errorf("Expected no rotation, got (%v,%v)", s.AngleX, s.AngleY)
	}
	if !s.FirstMouse {
		t.Errorf("Expected FirstMouse to stay set while not rotating")
	}
}

func TestCursorAngleFromCenter(t *testing.T) {
	s := New(800, 800)
	s.SetRotating(true)

	// First rotating event is swallowed
	s.HandleCursor(600, 100)
	if s.AngleX != 0 || s.AngleY != 0 {
		t.Fatalf("Expected first event to be dropped, got (%v,%v)", s.AngleX, s.AngleY)
	}

	s.HandleCursor(600, 200)
	if want := ConvertAngle(200); !approx(s.AngleX, want) {
		t.Errorf("AngleX = %v, want %v", s.AngleX, want)
	}
	if want := ConvertAngle(200); !approx(s.AngleY, want) {
		t.Errorf("AngleY = %v, want %v", s.AngleY, want)
	}

	// The angle does not accumulate: the same position yields the same angle
	s.HandleCursor(600, 200)
	if want := ConvertAngle(200); !approx(s.AngleX, want) {
		t.Errorf("AngleX accumulated: %v, want %v", s.AngleX, want)
	}

	s.HandleCursor(400, 400)
	if s.AngleX != 0 || s.AngleY != 0 {
		t.Errorf("Expected zero angles at center, got (%v,%v)", s.AngleX, s.AngleY)
	}
}

func TestViewMatrixAtRest(t *testing.T) {
	s := New(800, 800)
	got := s.ViewMatrix()
	want := mgl32.Translate3D(0, 0, -10)
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("ViewMatrix() = %v, want %v", got, want)
	}
}

func TestViewMatrixKeepsOffset(t *testing.T) {
	s := New(800, 800)
	s.AngleX = 1.3
	s.AngleY = -0.4
	v := s.ViewMatrix()
	origin := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(origin.Z(), -10) || !approx(origin.X(), 0) || !approx(origin.Y(), 0) {
		t.Errorf("Expected origin to map to the view offset, got %v", origin)
	}
}

func TestModelMatrixRotatesAboutY(t *testing.T) {
	m := ModelMatrix()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0})
	if !approx(up.Y(), 1) {
		t.Errorf("Expected Y axis to be fixed, got %v", up)
	}
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	if !approx(x.X(), float32(math.Cos(0.5))) {
		t.Errorf("Expected rotation of 0.5 rad, got %v", x)
	}
}

func TestProjectionSquare(t *testing.T) {
	p := Projection(800, 800)
	if !approx(p[0], p[5]) {
		t.Errorf("Expected equal x/y scale for a square target, got %v and %v", p[0], p[5])
	}
}
