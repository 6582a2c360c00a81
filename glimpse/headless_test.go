package glimpse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessRegisterClassOnlyOnce(t *testing.T) {
	p := NewHeadless()

	require.NoError(t, p.RegisterClass(ClassName))

	err := p.RegisterClass(ClassName)
	require.ErrorIs(t, err, ErrClassExists)
}

func TestHeadlessCreateWindowNeedsClass(t *testing.T) {
	p := NewHeadless()

	err := p.CreateWindow(ClassName, WindowOptions{Title: "W1"}, nil)
	require.ErrorIs(t, err, ErrUnknownClass)
	assert.Equal(t, 0, p.Windows())
}

func TestHeadlessCreateMessageCarriesPayload(t *testing.T) {
	p := NewHeadless()
	require.NoError(t, p.RegisterClass(ClassName))

	payload := NewPayload("factory")
	require.NoError(t, p.CreateWindow(ClassName, WindowOptions{Title: "W1"}, payload))

	var received []Message
	quit := p.Pump(func(msg Message) bool {
		received = append(received, msg)
		return true
	})

	require.False(t, quit)
	require.Len(t, received, 1)

	msg := received[0]
	assert.Equal(t, MessageCreate, msg.Kind)
	assert.Same(t, payload, msg.Payload)
	assert.True(t, p.IsWindow(msg.Window))
	assert.Equal(t, "W1", p.Title(msg.Window))

	width, height := p.GetSize(msg.Window)
	assert.Equal(t, uint32(800), width)
	assert.Equal(t, uint32(600), height)
}

func TestHeadlessCloseDefaultsToDestroy(t *testing.T) {
	p := NewHeadless()
	require.NoError(t, p.RegisterClass(ClassName))
	require.NoError(t, p.CreateWindow(ClassName, WindowOptions{}, nil))

	var handle Handle
	p.Pump(func(msg Message) bool {
		handle = msg.Window
		return true
	})

	p.RequestClose(handle)

	var kinds []MessageKind
	p.Pump(func(msg Message) bool {
		kinds = append(kinds, msg.Kind)

		if msg.Kind == MessageDestroy {
			assert.True(t, p.IsWindow(msg.Window), "handle must be valid during destroy")
		}

		// leave the close message to the default handling
		return msg.Kind != MessageClose
	})

	assert.Equal(t, []MessageKind{MessageClose, MessageDestroy}, kinds)
	assert.False(t, p.IsWindow(handle))
}

func TestHeadlessHandledCloseKeepsWindow(t *testing.T) {
	p := NewHeadless()
	require.NoError(t, p.RegisterClass(ClassName))
	require.NoError(t, p.CreateWindow(ClassName, WindowOptions{}, nil))

	var handle Handle
	p.Pump(func(msg Message) bool {
		handle = msg.Window
		return true
	})

	p.RequestClose(handle)
	p.Pump(func(msg Message) bool { return true })

	assert.True(t, p.IsWindow(handle))
}

func TestHeadlessQuitStopsPump(t *testing.T) {
	p := NewHeadless()
	require.NoError(t, p.RegisterClass(ClassName))

	p.PostQuit()
	require.NoError(t, p.CreateWindow(ClassName, WindowOptions{}, nil))

	dispatched := 0
	quit := p.Pump(func(msg Message) bool {
		dispatched++
		return true
	})

	assert.True(t, quit)
	assert.Equal(t, 0, dispatched)

	// the create message is still queued
	assert.Equal(t, 1, p.Queued())
}

func TestHeadlessInjectedFailures(t *testing.T) {
	p := NewHeadless()

	failure := errors.New("out of atoms")
	p.FailRegister = failure
	require.ErrorIs(t, p.RegisterClass(ClassName), failure)

	p.FailRegister = nil
	require.NoError(t, p.RegisterClass(ClassName))

	p.FailCreate = failure
	require.ErrorIs(t, p.CreateWindow(ClassName, WindowOptions{}, nil), failure)
}

func TestHeadlessResize(t *testing.T) {
	p := NewHeadless()
	require.NoError(t, p.RegisterClass(ClassName))
	require.NoError(t, p.CreateWindow(ClassName, WindowOptions{Width: 10, Height: 20}, nil))

	var handle Handle
	p.Pump(func(msg Message) bool {
		handle = msg.Window
		return true
	})

	p.Resize(handle, 30, 40)

	var resize Message
	p.Pump(func(msg Message) bool {
		resize = msg
		return false
	})

	assert.Equal(t, MessageResize, resize.Kind)
	assert.Equal(t, uint32(30), resize.Width)
	assert.Equal(t, uint32(40), resize.Height)

	width, height := p.GetSize(handle)
	assert.Equal(t, uint32(30), width)
	assert.Equal(t, uint32(40), height)
}
