// Package debugui provides Dear ImGui inspector panels for a running
// simulation.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nightfall/engine"
)

// ImguiItem holds a Dear ImGui render function. Every item in an Overlay
// renders once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming input. Frontends
// check it before handling clicks and keys themselves.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the state the ImguiSystem runs against.
type Overlay struct {
	Items      *engine.Pool[ImguiItem]
	InputState ImguiInputState
}

func NewOverlay() *Overlay {
	return &Overlay{Items: engine.NewPool[ImguiItem]()}
}

// Add registers a render function and returns its handle.
func (o *Overlay) Add(render func()) engine.Handle {
	return o.Items.Spawn(ImguiItem{Render: render})
}

// ImguiSystem updates the input capture state and defers every item's
// render function until the frame's commands flush.
type ImguiSystem struct{}

func (i *ImguiSystem) Execute(frame *engine.UpdateFrame[Overlay]) {
	state := &frame.State.InputState
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range frame.State.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
