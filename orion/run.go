package orion

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/pane/glimpse"
	"github.com/oliverbestmann/pane/pulse"
)

type RunOptions struct {
	// platform the windows are created on. Required.
	Platform glimpse.Platform

	// creates the gpu factory when the first window appears. Required.
	GPU pulse.FactoryFunc

	// used if GPU fails
	FallbackGPU pulse.FactoryFunc

	// options for every device, defaults to pulse.DefaultDeviceOptions if nil
	DeviceOptions *pulse.DeviceOptions

	WindowWidth     uint32
	WindowHeight    uint32
	WindowResizable bool

	// log frame statistics of every window each StatsInterval frames
	StatsInterval uint64
}

func (opts RunOptions) withDefaults() (RunOptions, error) {
	if opts.Platform == nil {
		return opts, errors.New("Platform must not be nil")
	}

	if opts.GPU == nil {
		return opts, errors.New("GPU must not be nil")
	}

	if opts.DeviceOptions == nil {
		defaults := pulse.DefaultDeviceOptions()
		opts.DeviceOptions = &defaults
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 800
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.StatsInterval == 0 {
		opts.StatsInterval = 600
	}

	return opts, nil
}

// Run creates a runtime, lets setup request the initial windows and spawn
// tasks, and runs the frame loop until the last window is closed.
// The platform is terminated before Run returns.
func Run(opts RunOptions, setup func(rt *Runtime)) error {
	rt, err := NewRuntime(opts)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}

	defer opts.Platform.Terminate()
	defer rt.Release()

	setup(rt)

	rt.Run()

	return nil
}
