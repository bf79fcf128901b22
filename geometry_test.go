package fractree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarToCartesian(t *testing.T) {
	assert := assert.New(t)

	origin := Point{X: 100, Y: 100}

	// 0° points right, angles grow clockwise on screen (the Y axis points down).
	right := polarToCartesian(origin, 50, 0)
	assert.InDelta(150.0, right.X, 1e-9)
	assert.InDelta(100.0, right.Y, 1e-9)

	down := polarToCartesian(origin, 50, headingDown)
	assert.InDelta(100.0, down.X, 1e-9)
	assert.InDelta(150.0, down.Y, 1e-9)

	up := polarToCartesian(origin, 50, headingUp)
	assert.InDelta(100.0, up.X, 1e-9)
	assert.InDelta(50.0, up.Y, 1e-9)

	left := polarToCartesian(origin, 50, 180)
	assert.InDelta(50.0, left.X, 1e-9)
	assert.InDelta(100.0, left.Y, 1e-9)
}

func TestPolarToCartesian_ZeroLength(t *testing.T) {
	origin := Point{X: 5, Y: 7}
	assert.Equal(t, origin, polarToCartesian(origin, 0, 135))
}
