package glimpse

import "fmt"

// noCopy may be embedded into structs which must not be copied
// after first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Window wraps the handle of a live native window. It does not own the
// native window: the platform destroys it, and the Window must be released
// before that happens.
type Window struct {
	_ noCopy

	platform Platform
	handle   Handle
	released bool
}

// WindowFromHandle wraps an existing native window. The handle must be valid,
// passing anything else is a programming error and panics.
func WindowFromHandle(platform Platform, handle Handle) *Window {
	if !platform.IsWindow(handle) {
		panic(fmt.Sprintf("glimpse: %s is not a valid window", handle))
	}

	return &Window{platform: platform, handle: handle}
}

func (w *Window) Handle() Handle {
	return w.handle
}

func (w *Window) GetSize() (uint32, uint32) {
	return w.platform.GetSize(w.handle)
}

// Release ends the lifetime of the wrapper. The native window must
// still be valid at this point.
func (w *Window) Release() {
	if w.released {
		panic(fmt.Sprintf("glimpse: window %s released twice", w.handle))
	}

	if !w.platform.IsWindow(w.handle) {
		panic(fmt.Sprintf("glimpse: window %s outlived its native handle", w.handle))
	}

	w.released = true
}
