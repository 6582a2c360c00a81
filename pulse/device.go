package pulse

import (
	"errors"

	"github.com/oliverbestmann/pane/glimpse"
)

var ErrNoFactory = errors.New("no gpu factory available")

// ErrPresent is wrapped by Device.Present when the frame could not be shown.
// This includes a lost device, which is not recovered from.
var ErrPresent = errors.New("present failed")

// Device is a rendering device bound to exactly one window.
type Device interface {
	// Clear fills the whole frame with the given color.
	Clear(color Color) error

	// FillRect fills the given rectangle (in pixels) with a solid color.
	FillRect(rect Rectangle2u, color Color) error

	// Present shows the frame rendered since the previous call.
	Present() error

	Release()
}

// Factory creates devices for windows. There is one factory per runtime.
type Factory interface {
	CreateDevice(win *glimpse.Window, opts DeviceOptions) (Device, error)
	Release()
}

// FactoryFunc creates a new Factory.
type FactoryFunc func() (Factory, error)

type SwapEffect uint8

const (
	// SwapEffectDiscard lets the driver throw away the back buffer after presenting.
	SwapEffectDiscard SwapEffect = iota

	// SwapEffectFlip presents in strict fifo order, waiting for vsync.
	SwapEffectFlip
)

func (s SwapEffect) String() string {
	switch s {
	case SwapEffectDiscard:
		return "discard"
	case SwapEffectFlip:
		return "flip"
	default:
		return "unknown"
	}
}

type DeviceOptions struct {
	Label string

	// render into a window instead of taking over the display
	Windowed bool

	SwapEffect SwapEffect

	// prefer the high performance adapter with hardware vertex processing
	HardwareProcessing bool

	// keep the floating point environment of the calling thread untouched
	PreserveFPU bool
}

// DefaultDeviceOptions are chosen for compatibility, not for maximum performance.
func DefaultDeviceOptions() DeviceOptions {
	return DeviceOptions{
		Windowed:           true,
		SwapEffect:         SwapEffectDiscard,
		HardwareProcessing: true,
		PreserveFPU:        true,
	}
}
