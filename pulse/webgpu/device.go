package webgpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/glm"
	"github.com/oliverbestmann/pane/pulse"
)

// Device renders into the surface of a single window.
type Device struct {
	window *glimpse.Window

	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue

	config     *wgpu.SurfaceConfiguration
	configured bool

	fills *fillCommand

	// the frame currently rendered to, acquired on first use
	frame     *wgpu.Texture
	frameView *wgpu.TextureView
}

func (d *Device) Clear(color pulse.Color) error {
	view, err := d.acquire()
	if err != nil || view == nil {
		return err
	}

	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Clear"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Clear",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpuColorOf(color),
			},
		},
	})

	defer pass.Release()

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	return d.submit(enc, "Clear")
}

func (d *Device) FillRect(rect pulse.Rectangle2u, color pulse.Color) error {
	view, err := d.acquire()
	if err != nil || view == nil {
		return err
	}

	frame := pulse.Rectangle2u{Max: glm.Vec2u{d.config.Width, d.config.Height}}

	rect = rect.Intersect(frame)
	if rect.Empty() {
		return nil
	}

	pipeline, err := d.fills.Get(d.config.Format)
	if err != nil {
		return err
	}

	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "FillRect"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "FillRect",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})

	defer pass.Release()

	clearValue := wgpuColorOf(color)

	x, y, w, h := rect.XYWH()

	pass.SetPipeline(pipeline)
	pass.SetBlendConstant(&clearValue)
	pass.SetScissorRect(x, y, w, h)
	pass.Draw(3, 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	return d.submit(enc, "FillRect")
}

func (d *Device) Present() error {
	view, err := d.acquire()
	if err != nil {
		return err
	}

	if view == nil {
		// nothing to show while the window has no area
		return nil
	}

	d.surface.Present()
	d.releaseFrame()

	return nil
}

func (d *Device) Release() {
	d.releaseFrame()

	if d.fills != nil {
		d.fills.Release()
		d.fills = nil
	}

	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}

	if d.device != nil {
		d.device.Release()
		d.device = nil
	}

	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}

	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
}

// acquire returns the view of the current frame. It returns nil
// without an error if the window currently has no area to render to.
func (d *Device) acquire() (*wgpu.TextureView, error) {
	if d.frameView != nil {
		return d.frameView, nil
	}

	width, height := d.window.GetSize()
	if width == 0 || height == 0 {
		return nil, nil
	}

	// reconfigure surface if needed
	if !d.configured || d.config.Width != width || d.config.Height != height {
		slog.Debug("Configure surface",
			slog.String("window", d.window.Handle().String()),
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		d.config.Width = width
		d.config.Height = height
		d.surface.Configure(d.adapter, d.device, d.config)
		d.configured = true
	}

	frame, err := d.surface.GetCurrentTexture()
	if err != nil {
		// the surface is outdated or the device is lost, nothing we can recover from
		return nil, fmt.Errorf("%w: get current texture: %w", pulse.ErrPresent, err)
	}

	view, err := frame.CreateView(nil)
	if err != nil {
		frame.Release()
		return nil, fmt.Errorf("create view of current texture: %w", err)
	}

	d.frame = frame
	d.frameView = view

	return view, nil
}

func (d *Device) releaseFrame() {
	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}

	if d.frame != nil {
		d.frame.Release()
		d.frame = nil
	}
}

func (d *Device) submit(enc *wgpu.CommandEncoder, label string) error {
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("finish %s: %w", label, err)
	}

	defer buf.Release()

	d.queue.Submit(buf)

	return nil
}

func wgpuColorOf(color pulse.Color) wgpu.Color {
	r, g, b, a := color.Components()

	return wgpu.Color{
		R: float64(r),
		G: float64(g),
		B: float64(b),
		A: float64(a),
	}
}
