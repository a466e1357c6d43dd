package ask

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func buttonCenterDistance(p Point, pointer Point) float64 {
	return math.Hypot(p.X+evadeButtonWidth/2-pointer.X, p.Y+evadeButtonHeight/2-pointer.Y)
}

func TestEvadeStaysInsideContainer(t *testing.T) {
	rng := testRNG(1)
	container := Bounds{Width: 800, Height: 600}

	for i := 0; i < 100; i++ {
		pos := NextEvadePosition(rng, container, Point{X: 400, Y: 300})
		require.GreaterOrEqual(t, pos.X, 0.0)
		require.GreaterOrEqual(t, pos.Y, 0.0)
		require.LessOrEqual(t, pos.X, container.Width-evadeButtonWidth)
		require.LessOrEqual(t, pos.Y, container.Height-evadeButtonHeight)
	}
}

func TestEvadeKeepsSafeDistanceWhenPossible(t *testing.T) {
	rng := testRNG(7)
	container := Bounds{Width: 1200, Height: 900}
	pointer := Point{X: 600, Y: 450}

	for i := 0; i < 100; i++ {
		pos := NextEvadePosition(rng, container, pointer)
		require.GreaterOrEqual(t, buttonCenterDistance(pos, pointer), evadeSafeDistance)
	}
}

func TestEvadeAcceptsBestCandidateInTinyContainer(t *testing.T) {
	rng := testRNG(3)
	// Too small for any position to clear the safe distance.
	container := Bounds{Width: 300, Height: 200}
	pointer := Point{X: 150, Y: 100}

	pos := NextEvadePosition(rng, container, pointer)
	require.GreaterOrEqual(t, pos.X, 0.0)
	require.LessOrEqual(t, pos.X, container.Width-evadeButtonWidth)
	require.GreaterOrEqual(t, pos.Y, 0.0)
	require.LessOrEqual(t, pos.Y, container.Height-evadeButtonHeight)
}

func TestEvadeContainerSmallerThanButton(t *testing.T) {
	rng := testRNG(5)
	pos := NextEvadePosition(rng, Bounds{Width: 100, Height: 40}, Point{X: 50, Y: 20})
	require.Zero(t, pos.X)
	require.Zero(t, pos.Y)
}

func TestEvadeIsDeterministicForSeed(t *testing.T) {
	container := Bounds{Width: 800, Height: 600}
	pointer := Point{X: 100, Y: 100}

	a := NextEvadePosition(testRNG(42), container, pointer)
	b := NextEvadePosition(testRNG(42), container, pointer)
	require.Equal(t, a, b)
}
