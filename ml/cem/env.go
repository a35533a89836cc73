// Package cem trains linear control policies with the cross-entropy method:
// sample a population of parameter vectors from a per-weight Gaussian,
// evaluate each by running episodes in a simulation environment, then refit
// the Gaussian to the elite fraction and repeat.
package cem

import (
	"math"
	"math/rand"
)

// Env is a stepped simulation environment with a discrete action space.
// Implementations are single-goroutine; concurrent evaluation uses one Env
// instance per worker.
type Env interface {
	// Reset starts a new episode and returns the initial observation.
	Reset(rng *rand.Rand) []float64
	// Step applies an action and returns the next observation, the reward
	// earned, and whether the episode ended.
	Step(action int) (obs []float64, reward float64, done bool)
	// ObservationSize is the length of observation vectors.
	ObservationSize() int
	// ActionCount is the number of discrete actions.
	ActionCount() int
}

// CartPole is the classic pole-balancing task: a cart on a frictionless
// track with an inverted pendulum. Actions push the cart left (0) or right
// (1); each surviving step earns reward 1. The episode ends when the pole
// tilts past ~12 degrees or the cart leaves the track.
type CartPole struct {
	x, xDot         float64
	theta, thetaDot float64
}

const (
	gravity        = 9.8
	cartMass       = 1.0
	poleMass       = 0.1
	totalMass      = cartMass + poleMass
	poleHalfLength = 0.5
	poleMassLength = poleMass * poleHalfLength
	forceMagnitude = 10.0
	tau            = 0.02 // seconds per step (Euler integration)
	thetaThreshold = 12 * 2 * math.Pi / 360
	xThreshold     = 2.4
	resetSpread    = 0.05
)

// NewCartPole returns an environment positioned at rest; call Reset before
// stepping.
func NewCartPole() *CartPole { return &CartPole{} }

func (c *CartPole) ObservationSize() int { return 4 }
func (c *CartPole) ActionCount() int { return 2 }

// Reset draws every state component uniformly from ±0.05.
func (c *CartPole) Reset(rng *rand.Rand) []float64 {
	c.x = uniform(rng)
	c.xDot = uniform(rng)
	c.theta = uniform(rng)
	c.thetaDot = uniform(rng)
	return c.observation()
}

// Step applies the push and advances the physics one Euler step.
func (c *CartPole) Step(action int) ([]float64, float64, bool) {
	force := -forceMagnitude
	if action == 1 {
		force = forceMagnitude
	}

	cosTheta := math.Cos(c.theta)
	sinTheta := math.Sin(c.theta)

	temp := (force + poleMassLength*c.thetaDot*c.thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) /
		(poleHalfLength * (4.0/3.0 - poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	c.x += tau * c.xDot
	c.xDot += tau * xAcc
	c.theta += tau * c.thetaDot
	c.thetaDot += tau * thetaAcc

	done := c.x < -xThreshold || c.x > xThreshold ||
		c.theta < -thetaThreshold || c.theta > thetaThreshold
	return c.observation(), 1.0, done
}

func (c *CartPole) observation() []float64 {
	return []float64{c.x, c.xDot, c.theta, c.thetaDot}
}

func uniform(rng *rand.Rand) float64 {
	return (rng.Float64()*2 - 1) * resetSpread
}
