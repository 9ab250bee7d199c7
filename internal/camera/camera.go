package camera

import (
	"math"

	"glview/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// State carries everything the cursor and button callbacks share with the
// frame loop. One instance is created at startup and passed by pointer.
type State struct {
	// AngleX and AngleY are the horizontal and vertical angles in radians
	AngleX float32
	AngleY float32

	// LastX, LastY is the reference point cursor offsets are measured from
	LastX float64
	LastY float64

	FirstMouse bool
	Rotating   bool

	SensitivityX float32
	SensitivityY float32
	Offset       mgl32.Vec3

	centerX float64
	centerY float64
}

// New creates camera state for a window of the given size
func New(width, height int) *State {
	s := &State{
		FirstMouse:   true,
		SensitivityX: config.SensitivityX,
		SensitivityY: config.SensitivityY,
		Offset:       config.ViewOffset,
	}
	s.centerX = float64(width) / 2.0
	s.centerY = float64(height) / 2.0
	s.LastX = s.centerX
	s.LastY = s.centerY
	return s
}

// Center returns the point the reference is reset to on every cursor event
func (s *State) Center() (float64, float64) {
	return s.centerX, s.centerY
}

// HandleCursor updates the angles from a cursor position event.
//
// The reference point is reset to the window center before anything else, so
// the angle follows the absolute distance of the cursor from the center rather
// than an accumulated drag. The first event seen while rotating is dropped.
func (s *State) HandleCursor(xpos, ypos float64) {
	s.LastX = s.centerX
	s.LastY = s.centerY

	if !s.Rotating {
		return
	}

	if s.FirstMouse {
		s.FirstMouse = false
		return
	}

	s.AngleX = ConvertAngle(float32(xpos - s.LastX))
	s.AngleY = ConvertAngle(float32(s.LastY - ypos))
}

// SetRotating sets the rotation flag. It mirrors whether the left mouse
// button is currently held.
func (s *State) SetRotating(held bool) {
	s.Rotating = held
}

// ConvertAngle maps a pixel offset to radians; AngleReferenceWidth pixels is
// a full turn.
func ConvertAngle(offset float32) float32 {
	deg := 360.0 * offset / config.AngleReferenceWidth
	return mgl32.DegToRad(deg)
}

// ViewMatrix builds translate(offset) * rotX * rotY.
//
// AngleX and AngleY are already radians and are passed through DegToRad a
// second time before the sensitivity is applied; the on-screen rotation rate
// depends on this.
func (s *State) ViewMatrix() mgl32.Mat4 {
	view := mgl32.Translate3D(s.Offset.X(), s.Offset.Y(), s.Offset.Z())
	view = view.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(s.AngleY) * s.SensitivityY))
	view = view.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.AngleX) * s.SensitivityX))
	return view
}

// Projection returns the perspective projection for the given target size
func Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1.0)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(config.FOV), aspect, config.NearPlane, config.FarPlane)
}

// ModelMatrix is the fixed model rotation: 0.5 rad about the normalized (0, 0.7, 0) axis
func ModelMatrix() mgl32.Mat4 {
	axis := mgl32.Vec3{0, 0.7, 0}.Normalize()
	return mgl32.HomogRotate3D(0.5, axis)
}

// FullTurn is the angle ConvertAngle yields for AngleReferenceWidth pixels
const FullTurn = float32(2 * math.Pi)
