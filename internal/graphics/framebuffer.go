package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Framebuffer is an off-screen render target: an RGB color texture plus a
// combined depth/stencil renderbuffer.
//
// Width and Height are fixed at creation. Window resizes do not touch them.
type Framebuffer struct {
	FBO      uint32
	ColorTex uint32
	RBO      uint32
	Width    int32
	Height   int32

	status statusReporter
}

// NewFramebuffer allocates the framebuffer and its attachments. An incomplete
// result is logged, not returned as an error; the caller keeps rendering into it.
func NewFramebuffer(width, height int, log *zap.Logger) *Framebuffer {
	fb := &Framebuffer{
		Width:  int32(width),
		Height: int32(height),
		status: statusReporter{log: log},
	}

	gl.GenFramebuffers(1, &fb.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)

	// Color attachment
	gl.GenTextures(1, &fb.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, fb.Width, fb.Height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.ColorTex, 0)

	// Depth + stencil
	gl.GenRenderbuffers(1, &fb.RBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.RBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, fb.Width, fb.Height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.RBO)

	fb.Check()

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fb
}

// Check queries the status of the currently bound framebuffer and reports
// whether it is complete.
func (fb *Framebuffer) Check() bool {
	return fb.status.report(gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
}

// Bind makes the framebuffer the render target
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
}

// BindDefault restores the window's framebuffer
func BindDefault() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Delete releases the framebuffer and its attachments
func (fb *Framebuffer) Delete() {
	gl.DeleteRenderbuffers(1, &fb.RBO)
	gl.DeleteTextures(1, &fb.ColorTex)
	gl.DeleteFramebuffers(1, &fb.FBO)
	fb.FBO, fb.ColorTex, fb.RBO = 0, 0, 0
}

// statusReporter logs an incomplete status once. A different incomplete
// status counts as a new configuration and is logged again.
type statusReporter struct {
	log    *zap.Logger
	logged bool
	last   uint32
}

func (s *statusReporter) report(status uint32) bool {
	if status == gl.FRAMEBUFFER_COMPLETE {
		s.logged = false
		s.last = status
		return true
	}
	if s.logged && s.last == status {
		return false
	}
	s.logged = true
	s.last = status
	if s.log != nil {
		s.log.Error("framebuffer is not complete", zap.String("status", statusName(status)))
	}
	return false
}

func statusName(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_UNDEFINED:
		return "undefined"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "incomplete layer targets"
	default:
		return "unknown"
	}
}
