package cem

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartPole_Shape(t *testing.T) {
	env := NewCartPole()
	assert.Equal(t, 4, env.ObservationSize())
	assert.Equal(t, 2, env.ActionCount())
}

func TestCartPole_ResetWithinSpread(t *testing.T) {
	env := NewCartPole()
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		obs := env.Reset(rng)
		require.Len(t, obs, 4)
		for i, v := range obs {
			assert.LessOrEqual(t, math.Abs(v), 0.05, "trial %d component %d", trial, i)
		}
	}
}

func TestCartPole_ResetDeterministic(t *testing.T) {
	a := NewCartPole().Reset(rand.New(rand.NewSource(7)))
	b := NewCartPole().Reset(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestCartPole_PushRightAcceleratesRight(t *testing.T) {
	env := NewCartPole() // exactly at rest, no Reset noise
	obs, reward, done := env.Step(1)
	assert.InDelta(t, 1.0, reward, 1e-12)
	assert.False(t, done)
	assert.Greater(t, obs[1], 0.0, "cart velocity after a right push")

	env = NewCartPole()
	obs, _, _ = env.Step(0)
	assert.Less(t, obs[1], 0.0, "cart velocity after a left push")
}

func TestCartPole_ConstantPushTopplesPole(t *testing.T) {
	env := NewCartPole()
	env.Reset(rand.New(rand.NewSource(1)))
	steps := 0
	for ; steps < 500; steps++ {
		if _, _, done := env.Step(1); done {
			break
		}
	}
	assert.Less(t, steps, 500, "a constant one-sided push must end the episode")
	assert.Greater(t, steps, 5, "termination should not be instant from a near-level start")
}

func TestCartPole_TrajectoryDeterministic(t *testing.T) {
	run := func() []float64 {
		env := NewCartPole()
		env.Reset(rand.New(rand.NewSource(3)))
		var trace []float64
		for i := 0; i < 50; i++ {
			obs, _, done := env.Step(i % 2)
			trace = append(trace, obs...)
			if done {
				break
			}
		}
		return trace
	}
	assert.Equal(t, run(), run())
}
