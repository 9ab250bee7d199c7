package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestRotateFollowsLeftButton(t *testing.T) {
	im := NewInputManager()

	if im.IsActive(ActionRotate) {
		t.Fatalf("Expected rotate to be inactive initially")
	}

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	if !im.IsActive(ActionRotate) {
		t.Errorf("Expected rotate while left button is held")
	}

	// Other buttons do not affect the left-button binding
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Release)
	im.HandleMouseButtonEvent(glfw.MouseButtonMiddle, glfw.Press)
	if !im.IsActive(ActionRotate) {
		t.Errorf("Expected rotate to survive other button events")
	}

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
	if im.IsActive(ActionRotate) {
		t.Errorf("Expected rotate to stop on release")
	}
}

func TestEscapeQuits(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if !im.IsActive(ActionQuit) {
		t.Fatalf("Expected quit to be active")
	}

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Repeat)
	if !im.IsActive(ActionQuit) {
		t.Errorf("Expected repeat to keep quit active")
	}

	im.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if im.IsActive(ActionRotate) {
		t.Errorf("Unbound key changed state")
	}

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	if im.IsActive(ActionQuit) {
		t.Errorf("Expected quit to clear on release")
	}
}

func TestOutOfRangeActions(t *testing.T) {
	im := NewInputManager()
	if im.IsActive(ActionCount) || im.IsActive(-1) {
		t.Errorf("Expected out-of-range actions to report false")
	}
}
