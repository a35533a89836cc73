package ml

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === ExperimentKey ===

// ExperimentKey uniquely identifies a reproducible experiment run.
// Two runs with the same ExperimentKey and identical configuration
// MUST produce bit-for-bit identical results.
type ExperimentKey int64

// NewExperimentKey creates an ExperimentKey from a seed value.
func NewExperimentKey(seed int64) ExperimentKey {
	return ExperimentKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemPopulation seeds initial population generation (GA, CEM).
	SubsystemPopulation = "population"

	// SubsystemSelection seeds tournament draws and elite sampling.
	SubsystemSelection = "selection"

	// SubsystemMutation seeds per-bit mutation decisions.
	SubsystemMutation = "mutation"

	// SubsystemEnvironment seeds simulation environment resets.
	SubsystemEnvironment = "environment"

	// SubsystemShuffle seeds index shuffles for splits and folds.
	SubsystemShuffle = "shuffle"
)

// SubsystemEpisode returns the subsystem name for episode n.
// Used when episodes must stay reproducible independently of evaluation order.
func SubsystemEpisode(n int) string {
	return fmt.Sprintf("episode_%d", n)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName). Drawing from one
// subsystem never advances another, so adding a new stochastic stage to an
// experiment does not perturb the streams of existing stages.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        ExperimentKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an ExperimentKey.
func NewPartitionedRNG(key ExperimentKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the ExperimentKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() ExperimentKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
