package fractree

import "math"

// Point is a canvas coordinate. The origin is the top-left corner of the
// canvas and the Y axis grows downwards, following the raster image convention.
type Point struct {
	X, Y float64
}

// Angles are measured in degrees, clockwise on screen, with 0° pointing to
// the right. Straight up is therefore 270° and straight down 90°, which is
// the same convention the branch headings are expressed in.
const (
	headingUp   = 270.0
	headingDown = 90.0
)

// polarToCartesian advances from origin by the given length along the heading
// expressed in degrees.
func polarToCartesian(origin Point, length, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{
		X: origin.X + length*math.Cos(rad),
		Y: origin.Y + length*math.Sin(rad),
	}
}
