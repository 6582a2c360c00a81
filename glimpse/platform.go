package glimpse

import (
	"errors"
	"fmt"
)

// ClassName is the window class every runtime window is created with.
const ClassName = "pane.window"

// ErrClassExists is returned by RegisterClass if the class was already registered.
var ErrClassExists = errors.New("window class already registered")

// ErrUnknownClass is returned by CreateWindow for a class that was never registered.
var ErrUnknownClass = errors.New("window class not registered")

// Handle identifies a native window. The zero value is never a valid handle.
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("hwnd#%d", uintptr(h))
}

type MessageKind uint8

const (
	// MessageCreate is sent once a window exists. It carries the payload
	// passed to CreateWindow.
	MessageCreate MessageKind = iota + 1

	// MessageDestroy is sent while the window handle is still valid. The handle
	// is invalidated right after the message was dispatched.
	MessageDestroy

	// MessageClose is sent when the user asks to close the window.
	// Default handling destroys the window.
	MessageClose

	// MessageResize is sent when the client area of a window changes.
	MessageResize

	// MessageQuit ends a call to Pump. It is never dispatched.
	MessageQuit
)

func (k MessageKind) String() string {
	switch k {
	case MessageCreate:
		return "create"
	case MessageDestroy:
		return "destroy"
	case MessageClose:
		return "close"
	case MessageResize:
		return "resize"
	case MessageQuit:
		return "quit"
	default:
		return fmt.Sprintf("message(%d)", uint8(k))
	}
}

type Message struct {
	Kind   MessageKind
	Window Handle

	// only set for MessageCreate
	Payload *Payload

	// only set for MessageResize
	Width, Height uint32
}

// Dispatcher receives messages from Pump. Returning false hands the message
// over to the platforms default handling.
type Dispatcher func(msg Message) (handled bool)

type WindowOptions struct {
	Title  string
	Width  uint32
	Height uint32

	// windows have a fixed size unless Resizable is set
	Resizable bool
}

// WithDefaults fills in the default size for zero values.
func (opts WindowOptions) WithDefaults() WindowOptions {
	if opts.Width == 0 {
		opts.Width = 800
	}

	if opts.Height == 0 {
		opts.Height = 600
	}

	return opts
}

// Platform is the native windowing service. All methods must be called
// from the thread that owns the platform.
type Platform interface {
	// RegisterClass registers a window class. It must be called once
	// before the first call to CreateWindow with that class.
	RegisterClass(name string) error

	// CreateWindow requests a new window. The window is reported to
	// the dispatcher with a MessageCreate carrying the given payload.
	CreateWindow(class string, opts WindowOptions, payload *Payload) error

	// IsWindow reports whether the handle refers to a live native window.
	IsWindow(h Handle) bool

	// GetSize returns the size of the client area in pixels.
	GetSize(h Handle) (uint32, uint32)

	// DestroyWindow queues a MessageDestroy for the window. The handle
	// is invalidated after the message was dispatched.
	DestroyWindow(h Handle)

	// Pump dispatches all currently queued messages without blocking.
	// It returns true as soon as a quit message is observed.
	Pump(dispatch Dispatcher) (quit bool)

	// PostQuit queues a quit message.
	PostQuit()

	// Terminate releases all native resources.
	Terminate()
}
