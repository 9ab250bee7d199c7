package scene

import (
	"glview/internal/camera"
	"glview/internal/config"
	"glview/internal/graphics"
	"glview/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Drawable is anything the scene pass can draw with the scene shader
type Drawable interface {
	Draw(shader *graphics.Shader)
	Delete()
}

// Renderer owns the two passes: the scene into the off-screen framebuffer,
// then the framebuffer's color texture onto the window through a screen quad.
type Renderer struct {
	sceneShader *graphics.Shader
	quadShader  *graphics.Shader
	quad        *graphics.ScreenQuad
	target      *graphics.Framebuffer
	drawable    Drawable
	light       Light
	log         *zap.Logger
}

// Options lists the resources NewRenderer loads
type Options struct {
	SceneVertex, SceneFragment string
	QuadVertex, QuadFragment   string
	Width, Height              int
}

// NewRenderer compiles both programs and allocates the screen quad and the
// off-screen framebuffer. The framebuffer size is fixed from opts.
func NewRenderer(opts Options, d Drawable, log *zap.Logger) (*Renderer, error) {
	sceneShader, err := graphics.NewShader(opts.SceneVertex, opts.SceneFragment)
	if err != nil {
		return nil, err
	}
	quadShader, err := graphics.NewShader(opts.QuadVertex, opts.QuadFragment)
	if err != nil {
		sceneShader.Delete()
		return nil, err
	}

	quadShader.Use()
	quadShader.SetInt("screenTexture", 0)

	r := &Renderer{
		sceneShader: sceneShader,
		quadShader:  quadShader,
		quad:        graphics.NewScreenQuad(),
		target:      graphics.NewFramebuffer(opts.Width, opts.Height, log),
		drawable:    d,
		light:       DefaultLight(),
		log:         log,
	}

	return r, nil
}

// RenderScene draws the drawable into the off-screen framebuffer
func (r *Renderer) RenderScene(cam *camera.State) {
	defer profiling.Track(profiling.PhaseScene)()

	r.target.Bind()
	r.target.Check()
	gl.Enable(gl.DEPTH_TEST)

	c := config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.sceneShader.Use()
	r.light.Apply(r.sceneShader)
	NewTransforms(cam, int(r.target.Width), int(r.target.Height)).Apply(r.sceneShader)

	if r.drawable != nil {
		r.drawable.Draw(r.sceneShader)
	}
}

// Composite draws the framebuffer's color texture over the whole window
func (r *Renderer) Composite() {
	defer profiling.Track(profiling.PhaseComposite)()

	graphics.BindDefault()
	gl.Disable(gl.DEPTH_TEST)

	c := config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.quadShader.Use()
	r.quad.Draw(r.target.ColorTex)
}

// Dispose releases every GPU object the renderer owns, the drawable included
func (r *Renderer) Dispose() {
	if r.drawable != nil {
		r.drawable.Delete()
	}
	r.sceneShader.Delete()
	r.quadShader.Delete()
	r.quad.Delete()
	r.target.Delete()
	r.log.Info("renderer disposed")
}
