package webgpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hashicorp/golang-lru/v2"
)

// The fill shader covers the whole target with a single triangle. The color
// is not part of the shader: the fragment stage emits white, and the blend
// stage replaces it with the blend constant of the render pass. The scissor
// rect limits the fill to the requested rectangle.
const fillShader = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    let uv = vec2<f32>(f32((idx << 1u) & 2u), f32(idx & 2u));
    return vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

func fillShaderDescriptor() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label:          "FillRect.Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fillShader},
	}
}

var blendConstant = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorConstant,
		DstFactor: wgpu.BlendFactorZero,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorConstant,
		DstFactor: wgpu.BlendFactorZero,
	},
}

// fillCommand keeps one fill pipeline per target format.
type fillCommand struct {
	device *wgpu.Device
	cache  *lru.Cache[wgpu.TextureFormat, *wgpu.RenderPipeline]
}

func newFillCommand(device *wgpu.Device) (*fillCommand, error) {
	cache, err := lru.NewWithEvict[wgpu.TextureFormat, *wgpu.RenderPipeline](4, releasePipelineOnEviction)
	if err != nil {
		return nil, err
	}

	return &fillCommand{device: device, cache: cache}, nil
}

func (c *fillCommand) Get(format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	pipeline, ok := c.cache.Get(format)
	if ok {
		return pipeline, nil
	}

	pipeline, err := c.specialize(format)
	if err != nil {
		return nil, err
	}

	c.cache.Add(format, pipeline)

	return pipeline, nil
}

func (c *fillCommand) Release() {
	c.cache.Purge()
}

func (c *fillCommand) specialize(format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	slog.Info("Create RenderPipeline for fills", slog.Any("format", format))

	shader, err := c.device.CreateShaderModule(fillShaderDescriptor())
	if err != nil {
		return nil, fmt.Errorf("compile fill shader: %w", err)
	}

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("FillRect.%s", format),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     &blendConstant,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}

	pipeline, err := c.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build fill pipeline: %w", err)
	}

	return pipeline, nil
}

func releasePipelineOnEviction(_ wgpu.TextureFormat, pipeline *wgpu.RenderPipeline) {
	pipeline.Release()
}
