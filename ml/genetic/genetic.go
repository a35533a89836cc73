// Package genetic implements a small genetic algorithm over fixed-length
// binary chromosomes: tournament selection, single-point crossover and
// per-bit mutation, with elitism. Fitness is the number of positions
// matching a reference chromosome, so the optimum is known and equal to the
// chromosome length.
package genetic

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/datalab-go/datalab/ml"
)

var (
	// ErrInvalidConfig indicates an out-of-range configuration field.
	ErrInvalidConfig = errors.New("genetic: invalid config")

	// ErrTargetLength indicates a reference chromosome whose length differs
	// from ChromosomeLength.
	ErrTargetLength = errors.New("genetic: reference length does not match ChromosomeLength")
)

// Chromosome is a fixed-length bit string.
type Chromosome []bool

// Config drives a Run. Zero values are rejected by Validate, not defaulted:
// population dynamics are too sensitive to guess for the caller.
type Config struct {
	PopulationSize   int     // individuals per generation (>= 2)
	ChromosomeLength int     // bits per individual (>= 2)
	Generations      int     // iterations after the initial population (>= 1)
	TournamentSize   int     // contestants per selection draw (1..PopulationSize)
	MutationRate     float64 // per-bit flip probability (0..1)
	Seed             int64   // master seed for the partitioned RNG
}

// Validate checks every field range.
func (c *Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: PopulationSize %d, need >= 2", ErrInvalidConfig, c.PopulationSize)
	}
	if c.ChromosomeLength < 2 {
		return fmt.Errorf("%w: ChromosomeLength %d, need >= 2", ErrInvalidConfig, c.ChromosomeLength)
	}
	if c.Generations < 1 {
		return fmt.Errorf("%w: Generations %d, need >= 1", ErrInvalidConfig, c.Generations)
	}
	if c.TournamentSize < 1 || c.TournamentSize > c.PopulationSize {
		return fmt.Errorf("%w: TournamentSize %d, need 1..%d", ErrInvalidConfig, c.TournamentSize, c.PopulationSize)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: MutationRate %v, need 0..1", ErrInvalidConfig, c.MutationRate)
	}
	return nil
}

// GenerationStats summarizes one generation.
type GenerationStats struct {
	Generation  int
	BestFitness int
	MeanFitness float64
}

// Result is the outcome of a Run.
type Result struct {
	Best        Chromosome
	BestFitness int
	History     []GenerationStats // one entry per generation, initial included
}

// Fitness counts positions where individual matches reference.
func Fitness(individual, reference Chromosome) int {
	score := 0
	for i := range individual {
		if individual[i] == reference[i] {
			score++
		}
	}
	return score
}

// Run evolves a population toward reference and returns the best individual
// found. Deterministic for a given Config (selection, mutation and the
// initial population draw from isolated RNG subsystems).
func Run(cfg Config, reference Chromosome) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(reference) != cfg.ChromosomeLength {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrTargetLength, len(reference), cfg.ChromosomeLength)
	}

	prng := ml.NewPartitionedRNG(ml.NewExperimentKey(cfg.Seed))
	popRNG := prng.ForSubsystem(ml.SubsystemPopulation)
	selRNG := prng.ForSubsystem(ml.SubsystemSelection)
	mutRNG := prng.ForSubsystem(ml.SubsystemMutation)

	pop := make([]Chromosome, cfg.PopulationSize)
	for i := range pop {
		pop[i] = randomChromosome(popRNG, cfg.ChromosomeLength)
	}
	scores := scorePopulation(pop, reference)

	res := Result{}
	record := func(gen int) {
		bestIdx := argmax(scores)
		res.History = append(res.History, GenerationStats{
			Generation:  gen,
			BestFitness: scores[bestIdx],
			MeanFitness: ml.Mean(scores),
		})
		if scores[bestIdx] > res.BestFitness || res.Best == nil {
			res.Best = append(Chromosome(nil), pop[bestIdx]...)
			res.BestFitness = scores[bestIdx]
		}
	}
	record(0)

	for gen := 1; gen <= cfg.Generations; gen++ {
		next := make([]Chromosome, 0, cfg.PopulationSize)

		// elitism: the incumbent best survives unmodified
		next = append(next, append(Chromosome(nil), pop[argmax(scores)]...))

		for len(next) < cfg.PopulationSize {
			a := tournament(pop, scores, cfg.TournamentSize, selRNG)
			b := tournament(pop, scores, cfg.TournamentSize, selRNG)
			child := crossover(a, b, selRNG)
			mutate(child, cfg.MutationRate, mutRNG)
			next = append(next, child)
		}

		pop = next
		scores = scorePopulation(pop, reference)
		record(gen)
	}
	return res, nil
}

func randomChromosome(rng *rand.Rand, length int) Chromosome {
	c := make(Chromosome, length)
	for i := range c {
		c[i] = rng.Intn(2) == 1
	}
	return c
}

func scorePopulation(pop []Chromosome, reference Chromosome) []int {
	scores := make([]int, len(pop))
	for i, ind := range pop {
		scores[i] = Fitness(ind, reference)
	}
	return scores
}

// tournament draws TournamentSize contestants with replacement and returns
// the fittest.
func tournament(pop []Chromosome, scores []int, size int, rng *rand.Rand) Chromosome {
	best := rng.Intn(len(pop))
	for i := 1; i < size; i++ {
		c := rng.Intn(len(pop))
		if scores[c] > scores[best] {
			best = c
		}
	}
	return pop[best]
}

// crossover splices a and b at a random interior point.
func crossover(a, b Chromosome, rng *rand.Rand) Chromosome {
	point := 1 + rng.Intn(len(a)-1)
	child := make(Chromosome, len(a))
	copy(child, a[:point])
	copy(child[point:], b[point:])
	return child
}

func mutate(c Chromosome, rate float64, rng *rand.Rand) {
	if rate == 0 {
		return
	}
	for i := range c {
		if rng.Float64() < rate {
			c[i] = !c[i]
		}
	}
}

func argmax(scores []int) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
