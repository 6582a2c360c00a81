package glimpse

import (
	"fmt"
	"log/slog"
)

type headlessWindow struct {
	class  string
	title  string
	width  uint32
	height uint32
}

// Headless is an in-memory Platform. Windows never reach a screen, but
// every message follows the same protocol as on a real platform, which
// makes it the platform of choice for tests and offscreen runs.
type Headless struct {
	// If set, RegisterClass and CreateWindow fail with these errors.
	FailRegister error
	FailCreate   error

	classes map[string]bool
	windows map[Handle]*headlessWindow
	queue   []Message
	last    Handle

	// number of calls to Pump
	Pumps int
}

func NewHeadless() *Headless {
	return &Headless{
		classes: map[string]bool{},
		windows: map[Handle]*headlessWindow{},
	}
}

func (p *Headless) RegisterClass(name string) error {
	if p.FailRegister != nil {
		return fmt.Errorf("register class %q: %w", name, p.FailRegister)
	}

	if p.classes[name] {
		return fmt.Errorf("register class %q: %w", name, ErrClassExists)
	}

	p.classes[name] = true
	return nil
}

func (p *Headless) CreateWindow(class string, opts WindowOptions, payload *Payload) error {
	if !p.classes[class] {
		return fmt.Errorf("create window %q: %w", opts.Title, ErrUnknownClass)
	}

	if p.FailCreate != nil {
		return fmt.Errorf("create window %q: %w", opts.Title, p.FailCreate)
	}

	opts = opts.WithDefaults()

	p.last++
	handle := p.last

	p.windows[handle] = &headlessWindow{
		class:  class,
		title:  opts.Title,
		width:  opts.Width,
		height: opts.Height,
	}

	p.post(Message{Kind: MessageCreate, Window: handle, Payload: payload})

	return nil
}

func (p *Headless) IsWindow(h Handle) bool {
	_, ok := p.windows[h]
	return ok
}

func (p *Headless) GetSize(h Handle) (uint32, uint32) {
	win, ok := p.windows[h]
	if !ok {
		return 0, 0
	}

	return win.width, win.height
}

// Title returns the title the window was created with.
func (p *Headless) Title(h Handle) string {
	win, ok := p.windows[h]
	if !ok {
		return ""
	}

	return win.title
}

// Windows returns the number of live windows.
func (p *Headless) Windows() int {
	return len(p.windows)
}

// Queued returns the number of messages waiting for the next Pump.
func (p *Headless) Queued() int {
	return len(p.queue)
}

// RequestClose simulates the user closing the window.
func (p *Headless) RequestClose(h Handle) {
	p.post(Message{Kind: MessageClose, Window: h})
}

// Resize simulates the user resizing the window.
func (p *Headless) Resize(h Handle, width, height uint32) {
	if win, ok := p.windows[h]; ok {
		win.width = width
		win.height = height
		p.post(Message{Kind: MessageResize, Window: h, Width: width, Height: height})
	}
}

// Inject queues an arbitrary message. This allows tests to replay
// protocol violations like duplicate creation messages.
func (p *Headless) Inject(msg Message) {
	p.post(msg)
}

func (p *Headless) DestroyWindow(h Handle) {
	p.post(Message{Kind: MessageDestroy, Window: h})
}

func (p *Headless) PostQuit() {
	p.post(Message{Kind: MessageQuit})
}

func (p *Headless) Pump(dispatch Dispatcher) bool {
	p.Pumps++

	for len(p.queue) > 0 {
		msg := p.queue[0]
		p.queue = p.queue[1:]

		if msg.Kind == MessageQuit {
			return true
		}

		if !p.IsWindow(msg.Window) {
			slog.Debug("Drop message for dead window",
				slog.String("kind", msg.Kind.String()),
				slog.String("window", msg.Window.String()),
			)

			continue
		}

		handled := dispatch(msg)

		switch {
		case msg.Kind == MessageDestroy:
			// the handle stays valid until the destroy message was dispatched
			delete(p.windows, msg.Window)

		case msg.Kind == MessageClose && !handled:
			p.DestroyWindow(msg.Window)
		}
	}

	return false
}

func (p *Headless) Terminate() {
	clear(p.windows)
	p.queue = nil
}

func (p *Headless) post(msg Message) {
	p.queue = append(p.queue, msg)
}
