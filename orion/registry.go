package orion

import (
	"maps"
	"slices"

	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/pulse"
)

// PerWindow is everything the runtime keeps for one window.
type PerWindow struct {
	Window *glimpse.Window
	Title  string

	// the registries reference to the device
	Device *pulse.Shared

	Root   Layer
	Frames FrameTimes
}

// Registry maps live windows to their state. A window is registered from its
// create message until its destroy message.
//
// The registry belongs to the thread of the frame loop and is not safe for concurrent use.
type Registry struct {
	windows map[glimpse.Handle]*PerWindow
}

func NewRegistry() *Registry {
	return &Registry{windows: map[glimpse.Handle]*PerWindow{}}
}

// Insert registers a window. Registering a handle twice panics.
func (r *Registry) Insert(pw *PerWindow) {
	handle := pw.Window.Handle()

	_, exists := r.windows[handle]
	Assert(!exists, "window %s registered twice", handle)

	r.windows[handle] = pw
}

// Remove unregisters a window and returns its state.
// Removing a handle that is not registered panics.
func (r *Registry) Remove(handle glimpse.Handle) *PerWindow {
	pw, exists := r.windows[handle]
	Assert(exists, "window %s is not registered", handle)

	delete(r.windows, handle)

	return pw
}

func (r *Registry) Get(handle glimpse.Handle) (*PerWindow, bool) {
	pw, ok := r.windows[handle]
	return pw, ok
}

func (r *Registry) Contains(handle glimpse.Handle) bool {
	_, ok := r.windows[handle]
	return ok
}

func (r *Registry) Len() int {
	return len(r.windows)
}

// Handles returns the handles of all registered windows in ascending order.
func (r *Registry) Handles() []glimpse.Handle {
	return slices.Sorted(maps.Keys(r.windows))
}

// Each calls fn for every registered window, in the order of Handles.
// Windows registered by fn are not visited, windows removed by fn are skipped.
func (r *Registry) Each(fn func(pw *PerWindow)) {
	for _, handle := range r.Handles() {
		if pw, ok := r.windows[handle]; ok {
			fn(pw)
		}
	}
}
