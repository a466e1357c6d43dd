package ask

import (
	"math"
	"math/rand/v2"
)

const (
	evadeButtonWidth  = 140.0
	evadeButtonHeight = 56.0
	// Minimum distance kept between the button center and the pointer.
	evadeSafeDistance = 200.0
	evadeMaxAttempts  = 20
)

// Point is a position inside the ask container, in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the size of the containing area.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NextEvadePosition picks a new spot for the "no" button away from the
// pointer. It samples random candidates until one clears the safe
// distance, keeping the farthest candidate seen as a fallback when the
// container is too small for any position to clear it. The result is
// always clamped inside the container.
func NextEvadePosition(rng *rand.Rand, container Bounds, pointer Point) Point {
	rangeX := math.Max(0, container.Width-evadeButtonWidth)
	rangeY := math.Max(0, container.Height-evadeButtonHeight)

	var best Point
	bestDistance := -1.0

	for attempt := 0; attempt < evadeMaxAttempts; attempt++ {
		candidate := Point{X: rng.Float64() * rangeX, Y: rng.Float64() * rangeY}

		dx := candidate.X + evadeButtonWidth/2 - pointer.X
		dy := candidate.Y + evadeButtonHeight/2 - pointer.Y
		distance := math.Hypot(dx, dy)

		if distance > bestDistance {
			best = candidate
			bestDistance = distance
		}
		if distance >= evadeSafeDistance {
			break
		}
	}

	best.X = math.Max(0, math.Min(best.X, rangeX))
	best.Y = math.Max(0, math.Min(best.Y, rangeY))
	return best
}
