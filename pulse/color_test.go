package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorARGB(t *testing.T) {
	c := ColorARGB(0xff332211)

	assert.Equal(t, ColorSRGBA(0x33/255.0, 0x22/255.0, 0x11/255.0, 1), c)

	_, _, _, a := c.Components()
	assert.Equal(t, float32(1), a)
}

func TestColorARGBKeepsAlphaLinear(t *testing.T) {
	r, _, _, a := ColorARGB(0x80ffffff).Components()

	assert.InDelta(t, 128.0/255, a, 1e-6)
	assert.InDelta(t, 1, r, 1e-6)
}

func TestZeroColorIsOpaqueWhite(t *testing.T) {
	assert.Equal(t, ColorWhite, Color{})
}
