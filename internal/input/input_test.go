package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestPressEdgeLastsOneFrame(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	assert.True(t, im.JustPressed(ActionReloadShaders))
	assert.False(t, im.JustPressed(ActionQuit))

	im.PostUpdate()
	assert.False(t, im.JustPressed(ActionReloadShaders))

	// key repeat while held does not produce another edge
	im.HandleKeyEvent(glfw.KeyR, glfw.Repeat)
	assert.False(t, im.JustPressed(ActionReloadShaders))

	im.HandleKeyEvent(glfw.KeyR, glfw.Release)
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	assert.True(t, im.JustPressed(ActionReloadShaders), "press after release is a new edge")
}

func TestBindings(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.BindKey(glfw.KeyQ, ActionCount)

	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.True(t, im.JustPressed(ActionQuit))
	assert.False(t, im.JustPressed(ActionCount))
	assert.False(t, im.JustPressed(Action(-1)))

	im.HandleKeyEvent(glfw.KeyUnknown, glfw.Press)
	assert.False(t, im.JustPressed(ActionDumpProfile))
}
