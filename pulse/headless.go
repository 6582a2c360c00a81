package pulse

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/pane/glimpse"
)

var errReleased = errors.New("device already released")

type OpKind uint8

const (
	OpClear OpKind = iota + 1
	OpFillRect
	OpPresent
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill-rect"
	case OpPresent:
		return "present"
	default:
		return "unknown"
	}
}

// Op is a single call recorded by a headless device.
type Op struct {
	Kind   OpKind
	Window glimpse.Handle
	Color  Color
	Rect   Rectangle2u
}

// HeadlessFactory creates devices that record every call instead of drawing.
// All devices append to the same Ops log, in call order.
type HeadlessFactory struct {
	// If set, CreateDevice or Present fail with these errors.
	FailCreate  error
	FailPresent error

	Ops []Op

	// options of every created device, in creation order
	Options []DeviceOptions

	// number of devices not yet released
	Live int

	Released bool
}

func NewHeadlessFactory() *HeadlessFactory {
	return &HeadlessFactory{}
}

// Func returns a FactoryFunc that always yields this factory.
func (f *HeadlessFactory) Func() FactoryFunc {
	return func() (Factory, error) {
		return f, nil
	}
}

func (f *HeadlessFactory) CreateDevice(win *glimpse.Window, opts DeviceOptions) (Device, error) {
	if f.FailCreate != nil {
		return nil, fmt.Errorf("create device for %s: %w", win.Handle(), f.FailCreate)
	}

	f.Options = append(f.Options, opts)
	f.Live++

	return &headlessDevice{factory: f, window: win.Handle()}, nil
}

func (f *HeadlessFactory) Release() {
	f.Released = true
}

// OpsOf returns the recorded calls of the given kind.
func (f *HeadlessFactory) OpsOf(kind OpKind) []Op {
	var ops []Op
	for _, op := range f.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}

	return ops
}

// Reset forgets all recorded calls.
func (f *HeadlessFactory) Reset() {
	f.Ops = nil
}

type headlessDevice struct {
	factory  *HeadlessFactory
	window   glimpse.Handle
	released bool
}

func (d *headlessDevice) Clear(color Color) error {
	return d.record(Op{Kind: OpClear, Color: color})
}

func (d *headlessDevice) FillRect(rect Rectangle2u, color Color) error {
	return d.record(Op{Kind: OpFillRect, Rect: rect, Color: color})
}

func (d *headlessDevice) Present() error {
	if d.factory.FailPresent != nil {
		return fmt.Errorf("%w: %w", ErrPresent, d.factory.FailPresent)
	}

	return d.record(Op{Kind: OpPresent})
}

func (d *headlessDevice) Release() {
	if d.released {
		panic("pulse: headless device released twice")
	}

	d.released = true
	d.factory.Live--
}

func (d *headlessDevice) record(op Op) error {
	if d.released {
		return errReleased
	}

	op.Window = d.window
	d.factory.Ops = append(d.factory.Ops, op)

	return nil
}
