package glm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := Vec2u{10, 20}
	b := Vec2u{3, 4}

	assert.Equal(t, Vec2u{13, 24}, a.Add(b))
	assert.Equal(t, Vec2u{7, 16}, a.Sub(b))

	x, y := a.XY()
	assert.Equal(t, uint32(10), x)
	assert.Equal(t, uint32(20), y)
}

func TestVec4Interpolation(t *testing.T) {
	from := Vec4f{0, 0, 0, 1}
	to := Vec4f{1, 0.5, 0, 1}

	mid := from.Add(to.Sub(from).MulScalar(0.5))
	assert.Equal(t, Vec4f{0.5, 0.25, 0, 1}, mid)

	r, g, b, a := mid.XYZW()
	assert.Equal(t, []float32{0.5, 0.25, 0, 1}, []float32{r, g, b, a})
}

func TestFastSincos(t *testing.T) {
	sin, cos := FastSincos(0)
	assert.InDelta(t, 0, sin, 1e-6)
	assert.InDelta(t, 1, cos, 1e-6)

	sin, cos = FastSincos(Rad(3.14159265 / 2))
	assert.InDelta(t, 1, sin, 1e-4)
	assert.InDelta(t, 0, cos, 1e-4)
}
