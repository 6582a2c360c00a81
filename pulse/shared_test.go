package pulse

import (
	"testing"

	"github.com/oliverbestmann/pane/glimpse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T) *glimpse.Window {
	t.Helper()

	p := glimpse.NewHeadless()
	require.NoError(t, p.RegisterClass(glimpse.ClassName))
	require.NoError(t, p.CreateWindow(glimpse.ClassName, glimpse.WindowOptions{}, nil))

	var handle glimpse.Handle
	p.Pump(func(msg glimpse.Message) bool {
		handle = msg.Window
		return true
	})

	return glimpse.WindowFromHandle(p, handle)
}

func TestSharedReleasesWithLastReference(t *testing.T) {
	factory := NewHeadlessFactory()

	dev, err := factory.CreateDevice(newTestWindow(t), DefaultDeviceOptions())
	require.NoError(t, err)
	require.Equal(t, 1, factory.Live)

	shared := Share(dev)
	retained := shared.Retain()
	assert.Same(t, shared, retained)
	assert.Equal(t, 2, shared.Refs())

	shared.Release()
	assert.Equal(t, 1, factory.Live, "device must survive while referenced")

	require.NoError(t, retained.Clear(ColorBlack))

	retained.Release()
	assert.Equal(t, 0, factory.Live)
	assert.Equal(t, 0, shared.Refs())
}

func TestSharedUseAfterReleasePanics(t *testing.T) {
	factory := NewHeadlessFactory()

	dev, err := factory.CreateDevice(newTestWindow(t), DefaultDeviceOptions())
	require.NoError(t, err)

	shared := Share(dev)
	shared.Release()

	assert.Panics(t, func() { _ = shared.Present() })
	assert.Panics(t, func() { shared.Retain() })
	assert.Panics(t, shared.Release)
}

func TestSharedForwardsToDevice(t *testing.T) {
	factory := NewHeadlessFactory()
	win := newTestWindow(t)

	dev, err := factory.CreateDevice(win, DefaultDeviceOptions())
	require.NoError(t, err)

	shared := Share(dev)
	defer shared.Release()

	red := ColorLinearRGBA(1, 0, 0, 1)
	rect := RectangleXYWH[uint32](1, 2, 2, 2)

	require.NoError(t, shared.Clear(red))
	require.NoError(t, shared.FillRect(rect, ColorWhite))
	require.NoError(t, shared.Present())

	assert.Equal(t, []Op{
		{Kind: OpClear, Window: win.Handle(), Color: red},
		{Kind: OpFillRect, Window: win.Handle(), Color: ColorWhite, Rect: rect},
		{Kind: OpPresent, Window: win.Handle()},
	}, factory.Ops)
}
