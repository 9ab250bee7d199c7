package main

import (
	"fmt"
	"os"
	"runtime"

	"glview/internal/camera"
	"glview/internal/config"
	"glview/internal/input"
	"glview/internal/logger"
	"glview/internal/model"
	"glview/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		closer.Exit(1)
	}
	closer.Bind(logger.Sync)
	log := logger.Log

	if err := glfw.Init(); err != nil {
		fatal("Failed to initialize GLFW", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		glfw.Terminate()
		fatal("Failed to create GLFW window", err)
	}
	if err := setupGL(); err != nil {
		glfw.Terminate()
		fatal("Failed to initialize OpenGL", err)
	}

	m, err := model.New(config.ModelPath, log)
	if err != nil {
		glfw.Terminate()
		fatal("Failed to load model", err)
	}

	r, err := scene.NewRenderer(scene.Options{
		SceneVertex:   config.SceneVertexShader,
		SceneFragment: config.SceneFragmentShader,
		QuadVertex:    config.QuadVertexShader,
		QuadFragment:  config.QuadFragmentShader,
		Width:         config.WindowWidth,
		Height:        config.WindowHeight,
	}, m, log)
	if err != nil {
		glfw.Terminate()
		fatal("Failed to build shaders", err)
	}
	defer r.Dispose()

	cam := camera.New(config.WindowWidth, config.WindowHeight)
	im := input.NewInputManager()
	setupInputHandlers(window, cam, im)

	NewFrameLoop(window, r, cam, im, log).Run()
}

// fatal logs err and exits with a non-zero status through closer
func fatal(msg string, err error) {
	logger.Log.Error(msg, zap.Error(err))
	closer.Exit(1)
}
