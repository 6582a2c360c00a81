// Package webgpu implements pulse.Factory and pulse.Device using wgpu.
package webgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/pulse"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// SurfaceSource resolves a native window to something webgpu can render to.
type SurfaceSource interface {
	SurfaceDescriptor(h glimpse.Handle) *wgpu.SurfaceDescriptor
}

// Factory owns the wgpu instance all devices are created from.
type Factory struct {
	instance *wgpu.Instance
	surfaces SurfaceSource

	forceFallback bool
}

// New returns the primary FactoryFunc. It picks a real adapter unless
// WGPU_FORCE_FALLBACK_ADAPTER=1 is set.
func New(surfaces SurfaceSource) pulse.FactoryFunc {
	return func() (pulse.Factory, error) {
		return newFactory(surfaces, forceFallbackAdapter)
	}
}

// NewFallback returns a FactoryFunc that always uses the fallback
// (usually software) adapter.
func NewFallback(surfaces SurfaceSource) pulse.FactoryFunc {
	return func() (pulse.Factory, error) {
		return newFactory(surfaces, true)
	}
}

func newFactory(surfaces SurfaceSource, forceFallback bool) (*Factory, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, errors.New("create wgpu instance")
	}

	slog.Info("Created wgpu instance", slog.Bool("fallbackAdapter", forceFallback))

	return &Factory{
		instance:      instance,
		surfaces:      surfaces,
		forceFallback: forceFallback,
	}, nil
}

func (f *Factory) CreateDevice(win *glimpse.Window, opts pulse.DeviceOptions) (dev pulse.Device, err error) {
	// Windowed and PreserveFPU have no meaning for wgpu: surfaces always belong
	// to a window and the driver does not touch the fpu state of the caller.

	d := &Device{window: win}

	defer func() {
		if err != nil {
			d.Release()
			dev = nil
		}
	}()

	d.surface = f.instance.CreateSurface(f.surfaces.SurfaceDescriptor(win.Handle()))

	powerPreference := wgpu.PowerPreferenceLowPower
	if opts.HardwareProcessing {
		powerPreference = wgpu.PowerPreferenceHighPerformance
	}

	d.adapter, err = f.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: f.forceFallback,
		CompatibleSurface:    d.surface,
		PowerPreference:      powerPreference,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	d.device, err = d.adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: opts.Label})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	d.queue = d.device.GetQueue()

	caps := d.surface.GetCapabilities(d.adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface of %s is not compatible with the adapter", win.Handle())
	}

	d.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		PresentMode: presentModeOf(opts.SwapEffect, caps.PresentModes),
		AlphaMode:   caps.AlphaModes[0],
	}

	d.fills, err = newFillCommand(d.device)
	if err != nil {
		return nil, fmt.Errorf("create fill command: %w", err)
	}

	slog.Info("Created device",
		slog.String("window", win.Handle().String()),
		slog.Any("format", d.config.Format),
		slog.Any("presentMode", d.config.PresentMode),
		slog.String("swapEffect", opts.SwapEffect.String()),
	)

	return d, nil
}

func (f *Factory) Release() {
	if f.instance != nil {
		f.instance.Release()
		f.instance = nil
	}
}

func presentModeOf(effect pulse.SwapEffect, supported []wgpu.PresentMode) wgpu.PresentMode {
	if effect == pulse.SwapEffectDiscard {
		for _, mode := range supported {
			if mode == wgpu.PresentModeMailbox {
				return mode
			}
		}
	}

	// fifo must be supported by every surface
	return wgpu.PresentModeFifo
}
