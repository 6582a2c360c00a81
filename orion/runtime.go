package orion

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/orion/task"
	"github.com/oliverbestmann/pane/pulse"
)

// windowRequest travels with the create request of a window
// as its payload, until the create message arrives.
type windowRequest struct {
	title   string
	factory WindowFactory
}

// Runtime owns the windows of one thread, their devices and the frame loop.
// A Runtime and everything it hands out must only be used on the
// thread that runs its frame loop. There is at most one Runtime per thread.
type Runtime struct {
	opts RunOptions

	platform glimpse.Platform
	common   *pulse.Common
	registry *Registry
	tasks    *task.Executor

	classOnce sync.Once
}

// NewRuntime creates a runtime bound to the calling goroutine. The goroutine is
// locked to its OS thread until Release is called.
func NewRuntime(opts RunOptions) (*Runtime, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	// the platform, the devices and the task coroutines are bound to the
	// thread they were created on
	runtime.LockOSThread()

	rt := &Runtime{
		opts:     opts,
		platform: opts.Platform,
		common:   pulse.NewCommon(opts.GPU, opts.FallbackGPU),
		registry: NewRegistry(),
		tasks:    task.NewExecutor(),
	}

	return rt, nil
}

// Registry exposes the windows currently known to the runtime.
func (rt *Runtime) Registry() *Registry {
	return rt.registry
}

func (rt *Runtime) Platform() glimpse.Platform {
	return rt.platform
}

// CreateWindow requests a new window. The factory runs once the platform
// reports the window as created, during one of the next frame loop
// iterations. The window is rendered from then on.
func (rt *Runtime) CreateWindow(title string, factory WindowFactory) {
	Assert(factory != nil, "window %q requested without factory", title)

	rt.registerClass()

	opts := glimpse.WindowOptions{
		Title:     title,
		Width:     rt.opts.WindowWidth,
		Height:    rt.opts.WindowHeight,
		Resizable: rt.opts.WindowResizable,
	}

	payload := glimpse.NewPayload(windowRequest{title: title, factory: factory})

	err := rt.platform.CreateWindow(glimpse.ClassName, opts, payload)
	Handle(err, "create window %q", title)
}

// Spawn queues a cooperative task. It starts during the next frame loop iteration.
func (rt *Runtime) Spawn(t task.Task) {
	rt.tasks.Spawn(t)
}

// RunOnce runs a single iteration of the frame loop: dispatch all pending
// messages, run all runnable tasks, render every window and present every
// window. It returns true if a quit message was observed, in which case
// nothing besides dispatching messages happened.
func (rt *Runtime) RunOnce() (quit bool) {
	if rt.platform.Pump(rt.dispatch) {
		return true
	}

	rt.tasks.RunUntilStalled()

	rt.registry.Each(func(pw *PerWindow) {
		pw.Root.Render(&RenderContext{
			Window: pw.Window.Handle(),
			Device: pw.Device,
			Frame:  pw.Frames.FrameCount,
		})
	})

	rt.registry.Each(func(pw *PerWindow) {
		// a lost device ends up here too. We do not try to recover from that.
		Handle(pw.Device.Present(), "present %s", pw.Window.Handle())
	})

	now := time.Now()
	rt.registry.Each(func(pw *PerWindow) {
		if pw.Frames.Tick(now, rt.opts.StatsInterval) {
			slog.Debug("Frame statistics",
				slog.String("window", pw.Window.Handle().String()),
				slog.Uint64("frames", pw.Frames.FrameCount),
				slog.Float64("fps", pw.Frames.FPS()),
				slog.Duration("max", pw.Frames.MaxDuration),
			)
		}
	})

	return false
}

// Run runs the frame loop on the current thread until a quit message
// is observed. This happens after the last window was destroyed.
func (rt *Runtime) Run() {
	slog.Info("Frame loop started")

	for !rt.RunOnce() {
	}

	slog.Info("Frame loop finished")
}

// Release abandons all pending tasks and releases the windows that are still
// registered together with the gpu factory. The platform is not terminated.
// Release must be called on the goroutine that created the runtime.
func (rt *Runtime) Release() {
	rt.tasks.Close()

	for _, handle := range rt.registry.Handles() {
		rt.unregister(handle)
	}

	rt.common.Release()

	runtime.UnlockOSThread()
}

func (rt *Runtime) registerClass() {
	rt.classOnce.Do(func() {
		err := rt.platform.RegisterClass(glimpse.ClassName)
		Handle(err, "register window class %q", glimpse.ClassName)
	})
}

// dispatch is called by the platform for every message.
func (rt *Runtime) dispatch(msg glimpse.Message) bool {
	switch msg.Kind {
	case glimpse.MessageCreate:
		rt.onCreate(msg)
		return true

	case glimpse.MessageDestroy:
		rt.onDestroy(msg)
		return true

	default:
		return false
	}
}

func (rt *Runtime) onCreate(msg glimpse.Message) {
	handle := msg.Window

	Assert(!rt.registry.Contains(handle), "duplicate create message for %s", handle)

	req, ok := msg.Payload.Take().(windowRequest)
	Assert(ok, "create message for %s does not carry a window request", handle)

	win := glimpse.WindowFromHandle(rt.platform, handle)

	gpu, err := rt.common.Factory()
	Handle(err, "initialize gpu")

	dev, err := gpu.CreateDevice(win, *rt.opts.DeviceOptions)
	Handle(err, "create device for %s", handle)

	device := pulse.Share(dev)

	root := req.factory(&CreateContext{
		Window:  handle,
		Title:   req.title,
		Device:  device,
		Runtime: rt,
	})

	if root == nil {
		root = NopLayer{}
	}

	rt.registry.Insert(&PerWindow{
		Window: win,
		Title:  req.title,
		Device: device,
		Root:   root,
	})

	slog.Info("Window registered",
		slog.String("window", handle.String()),
		slog.String("title", req.title),
		slog.Int("windows", rt.registry.Len()),
	)
}

func (rt *Runtime) onDestroy(msg glimpse.Message) {
	rt.unregister(msg.Window)

	slog.Info("Window unregistered",
		slog.String("window", msg.Window.String()),
		slog.Int("windows", rt.registry.Len()),
	)

	if rt.registry.Len() == 0 {
		slog.Info("Last window destroyed, quitting")
		rt.platform.PostQuit()
	}
}

func (rt *Runtime) unregister(handle glimpse.Handle) {
	pw := rt.registry.Remove(handle)

	// the wrapper must go before the native window does
	pw.Window.Release()
	pw.Device.Release()
}
