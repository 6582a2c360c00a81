package orion

import (
	"github.com/oliverbestmann/pane/pulse"
)

// Layer draws into the frame of a window. It is called once per frame.
type Layer interface {
	Render(ctx *RenderContext)
}

// NopLayer draws nothing.
type NopLayer struct{}

func (NopLayer) Render(*RenderContext) {}

// LayerFunc adapts a function to the Layer interface.
type LayerFunc func(ctx *RenderContext)

func (f LayerFunc) Render(ctx *RenderContext) {
	f(ctx)
}

// Layers is a Layer made of other layers. The layer pushed last renders
// first, the layer pushed first renders last.
type Layers struct{ list []Layer }

func NewLayers(layers ...Layer) *Layers {
	ls := &Layers{}
	for _, l := range layers {
		ls.Push(l)
	}

	return ls
}

func (ls *Layers) Push(l Layer) { ls.list = append(ls.list, l) }

func (ls *Layers) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}

	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *Layers) Len() int { return len(ls.list) }

func (ls *Layers) Render(ctx *RenderContext) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		ls.list[i].Render(ctx)
	}
}

// ClearLayer fills the whole frame with a color.
type ClearLayer struct {
	Color pulse.Color
}

func (l *ClearLayer) Render(ctx *RenderContext) {
	Handle(ctx.Device.Clear(l.Color), "clear %s", ctx.Window)
}

// RectLayer fills a rectangle of the frame with a color.
type RectLayer struct {
	Rect  pulse.Rectangle2u
	Color pulse.Color
}

func (l *RectLayer) Render(ctx *RenderContext) {
	Handle(ctx.Device.FillRect(l.Rect, l.Color), "fill rect on %s", ctx.Window)
}
