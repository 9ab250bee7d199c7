package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionRotate
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and mouse buttons to logical actions and
// tracks whether each action is held
type InputManager struct {
	mu sync.RWMutex

	keyToAction         map[glfw.Key]Action
	mouseButtonToAction map[glfw.MouseButton]Action

	held [ActionCount]bool
}

// NewInputManager creates an InputManager with the viewer's bindings:
// Escape quits and the left mouse button rotates the camera.
func NewInputManager() *InputManager {
	return &InputManager{
		keyToAction: map[glfw.Key]Action{
			glfw.KeyEscape: ActionQuit,
		},
		mouseButtonToAction: map[glfw.MouseButton]Action{
			glfw.MouseButtonLeft: ActionRotate,
		},
	}
}

// HandleKeyEvent updates the action bound to key. Repeat counts as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	if act, ok := im.keyToAction[key]; ok {
		im.set(act, action == glfw.Press || action == glfw.Repeat)
	}
}

// HandleMouseButtonEvent updates the action bound to button. Unbound buttons
// are ignored.
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	if act, ok := im.mouseButtonToAction[button]; ok {
		im.set(act, action == glfw.Press)
	}
}

func (im *InputManager) set(act Action, pressed bool) {
	im.mu.Lock()
	im.held[act] = pressed
	im.mu.Unlock()
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.held[action]
}
