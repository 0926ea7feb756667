package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysStatePressAndRelease(t *testing.T) {
	var input InputState

	input.Keys.Press(KeyUp)
	assert.True(t, input.IsKeyPressed(KeyUp))
	assert.True(t, input.IsKeyJustPressed(KeyUp))

	input.NextTick()
	assert.True(t, input.IsKeyPressed(KeyUp), "key stays pressed across ticks")
	assert.False(t, input.IsKeyJustPressed(KeyUp))

	input.Keys.Release(KeyUp)
	assert.False(t, input.IsKeyPressed(KeyUp))
	assert.True(t, input.Keys.JustReleased[KeyUp])

	input.NextTick()
	assert.False(t, input.Keys.JustReleased[KeyUp])
}

func TestMouseStateTracksDeltaPerTick(t *testing.T) {
	var input InputState

	input.Mouse.Position(10, 10)
	assert.Zero(t, input.Mouse.DeltaX, "first position has no delta")

	input.Mouse.Position(15, 7)
	input.Mouse.Position(20, 8)
	assert.Equal(t, float32(10), input.Mouse.DeltaX)
	assert.Equal(t, float32(-2), input.Mouse.DeltaY)

	input.NextTick()
	assert.Zero(t, input.Mouse.DeltaX)
	assert.Zero(t, input.Mouse.DeltaY)
	assert.Equal(t, float32(20), input.Mouse.CursorX)
}

func TestMouseButtons(t *testing.T) {
	var input InputState

	input.Mouse.Press(1)
	assert.True(t, input.Mouse.Pressed[1])
	assert.True(t, input.Mouse.JustPressed[1])

	input.NextTick()
	input.Mouse.Release(1)
	assert.False(t, input.Mouse.Pressed[1])
	assert.True(t, input.Mouse.JustReleased[1])
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "1", Key1.String())
	assert.Equal(t, "W", KeyW.String())
	assert.Equal(t, "Key(99)", Key(99).String())
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	assert.Equal(t, Options{Width: 800, Height: 600, Title: "LearnOpenGL", ContextMajor: 3, ContextMinor: 3}, opts)

	custom := Options{Width: 320, Height: 200, Title: "x", ContextMajor: 4, ContextMinor: 1}.WithDefaults()
	assert.Equal(t, 320, custom.Width)
	assert.Equal(t, 4, custom.ContextMajor)
	assert.Equal(t, 1, custom.ContextMinor)
}
