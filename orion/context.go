package orion

import (
	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/pulse"
)

// CreateContext is passed to a WindowFactory, once per window.
//
// Device is borrowed from the runtime for the duration of the call. Call
// Device.Retain to keep it and Device.Release once done.
type CreateContext struct {
	Window  glimpse.Handle
	Title   string
	Device  *pulse.Shared
	Runtime *Runtime
}

// RenderContext is passed to the root layer of a window, once per frame.
// Device is borrowed, the same rules as for CreateContext apply.
type RenderContext struct {
	Window glimpse.Handle
	Device *pulse.Shared

	// number of the frame rendered for this window, starting at zero
	Frame uint64
}

// WindowFactory builds the root layer of a new window.
type WindowFactory func(ctx *CreateContext) Layer
