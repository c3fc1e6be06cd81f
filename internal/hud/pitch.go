package hud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// PitchDegrees returns the angle between forward and the horizontal plane,
// positive when the nose points up. Y is the up axis. The vertical
// component is clamped to [-1, 1] so slightly denormalized vectors still
// give a finite result in [-90, 90]. A NaN component reads as level.
func PitchDegrees(forward r3.Vector) float64 {
	if math.IsNaN(forward.Y) {
		return 0
	}
	y := math.Max(-1, math.Min(1, forward.Y))
	return s1.Angle(math.Asin(y)).Degrees()
}
