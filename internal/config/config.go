package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Window dimensions at startup. The off-screen framebuffer is sized from these
// and is never resized afterwards.
const (
	WindowWidth  = 800
	WindowHeight = 800
	WindowTitle  = "OpenGL"
)

// Resource paths, resolved relative to the working directory.
const (
	SceneVertexShader   = "./resource/object.vert"
	SceneFragmentShader = "./resource/object.frag"
	QuadVertexShader    = "./resource/pp_quad.vert"
	QuadFragmentShader  = "./resource/pp_quad.frag"
	ModelPath           = "./resource/objects/backpack/backpack.obj"
)

// Camera constants
const (
	SensitivityX float32 = 7.0
	SensitivityY float32 = 5.0

	// AngleReferenceWidth is the cursor offset in pixels that maps to a full turn.
	AngleReferenceWidth float32 = 800.0

	FOV       float32 = 45.0
	NearPlane float32 = 0.1
	FarPlane  float32 = 100.0
)

// ViewOffset is the fixed view-space translation applied before rotation.
var ViewOffset = mgl32.Vec3{0, 0, -10}

// ClearColor is what both passes clear to before drawing.
var ClearColor = mgl32.Vec4{0, 0, 0, 1}

// SlowFrame is the frame time above which the frame loop reports its slowest
// phases. Reports are limited to one per SlowFrameReportInterval.
const (
	SlowFrame               = 16 * time.Millisecond
	SlowFrameReportInterval = time.Second
)
