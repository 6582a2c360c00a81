//go:build !js

// Package desktop implements glimpse.Platform on top of glfw.
package desktop

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/pane/glimpse"
	"github.com/pkg/profile"
)

type Options struct {
	// write a cpu profile to the working directory until Terminate is called
	CPUProfile bool
}

type window struct {
	win   *glfw.Window
	class string
}

// Platform is a glimpse.Platform backed by glfw. glfw must only be used from the
// main thread, the Platform must therefore be created and used on the main thread.
type Platform struct {
	prof interface{ Stop() }

	initialized bool
	classes     map[string]bool
	windows     map[glimpse.Handle]*window
	queue       []glimpse.Message
	last        glimpse.Handle
}

func New(opts Options) *Platform {
	p := &Platform{
		classes: map[string]bool{},
		windows: map[glimpse.Handle]*window{},
	}

	if opts.CPUProfile {
		p.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	}

	return p
}

func (p *Platform) RegisterClass(name string) error {
	if p.classes[name] {
		return fmt.Errorf("register class %q: %w", name, glimpse.ErrClassExists)
	}

	if !p.initialized {
		if err := glfw.Init(); err != nil {
			return fmt.Errorf("initialize glfw: %w", err)
		}

		p.initialized = true
	}

	p.classes[name] = true

	return nil
}

func (p *Platform) CreateWindow(class string, opts glimpse.WindowOptions, payload *glimpse.Payload) error {
	if !p.classes[class] {
		return fmt.Errorf("create window %q: %w", opts.Title, glimpse.ErrUnknownClass)
	}

	opts = opts.WithDefaults()

	// the device is created by webgpu, we do not want a gl context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))

	win, err := glfw.CreateWindow(int(opts.Width), int(opts.Height), opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window %q: %w", opts.Title, err)
	}

	p.last++
	handle := p.last

	p.windows[handle] = &window{win: win, class: class}

	win.SetCloseCallback(func(_ *glfw.Window) {
		// we decide when the window goes away, not glfw
		win.SetShouldClose(false)
		p.post(glimpse.Message{Kind: glimpse.MessageClose, Window: handle})
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.post(glimpse.Message{
			Kind:   glimpse.MessageResize,
			Window: handle,
			Width:  uint32(max(width, 0)),
			Height: uint32(max(height, 0)),
		})
	})

	slog.Info("Window created",
		slog.String("window", handle.String()),
		slog.String("title", opts.Title),
	)

	p.post(glimpse.Message{Kind: glimpse.MessageCreate, Window: handle, Payload: payload})

	return nil
}

func (p *Platform) IsWindow(h glimpse.Handle) bool {
	_, ok := p.windows[h]
	return ok
}

func (p *Platform) GetSize(h glimpse.Handle) (uint32, uint32) {
	win, ok := p.windows[h]
	if !ok {
		return 0, 0
	}

	width, height := win.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

// SurfaceDescriptor describes the native surface of the window to webgpu.
func (p *Platform) SurfaceDescriptor(h glimpse.Handle) *wgpu.SurfaceDescriptor {
	win, ok := p.windows[h]
	if !ok {
		panic(fmt.Sprintf("desktop: %s is not a valid window", h))
	}

	return wgpuglfw.GetSurfaceDescriptor(win.win)
}

func (p *Platform) DestroyWindow(h glimpse.Handle) {
	p.post(glimpse.Message{Kind: glimpse.MessageDestroy, Window: h})
}

func (p *Platform) PostQuit() {
	p.post(glimpse.Message{Kind: glimpse.MessageQuit})
}

func (p *Platform) Pump(dispatch glimpse.Dispatcher) bool {
	if p.initialized {
		glfw.PollEvents()
	}

	for len(p.queue) > 0 {
		msg := p.queue[0]
		p.queue = p.queue[1:]

		if msg.Kind == glimpse.MessageQuit {
			return true
		}

		win, ok := p.windows[msg.Window]
		if !ok {
			continue
		}

		handled := dispatch(msg)

		switch {
		case msg.Kind == glimpse.MessageDestroy:
			delete(p.windows, msg.Window)
			win.win.Destroy()

			slog.Info("Window destroyed", slog.String("window", msg.Window.String()))

		case msg.Kind == glimpse.MessageClose && !handled:
			p.DestroyWindow(msg.Window)
		}
	}

	return false
}

func (p *Platform) Terminate() {
	for handle, win := range p.windows {
		win.win.Destroy()
		delete(p.windows, handle)
	}

	if p.initialized {
		glfw.Terminate()
		p.initialized = false
	}

	if p.prof != nil {
		p.prof.Stop()
		p.prof = nil
	}
}

func (p *Platform) post(msg glimpse.Message) {
	p.queue = append(p.queue, msg)
}

func glfwBool(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}
