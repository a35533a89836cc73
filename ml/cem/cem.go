package cem

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/datalab-go/datalab/ml"
	"github.com/datalab-go/datalab/ml/parallel"
)

var (
	// ErrInvalidConfig indicates an out-of-range configuration field.
	ErrInvalidConfig = errors.New("cem: invalid config")

	// ErrNilEnvFactory indicates a missing environment constructor.
	ErrNilEnvFactory = errors.New("cem: env factory must not be nil")
)

// Config drives Train.
type Config struct {
	PopulationSize       int     // candidate policies per iteration (>= 2)
	EliteFraction        float64 // share refitting the Gaussian (0..1, at least one candidate)
	Iterations           int     // sample/evaluate/refit rounds (>= 1)
	EpisodesPerCandidate int     // episodes averaged into a candidate's return (>= 1)
	MaxEpisodeSteps      int     // hard episode cap (>= 1)
	InitialStd           float64 // starting sampling spread (> 0)
	StdFloor             float64 // minimum per-weight std, prevents premature collapse (>= 0)
	Workers              int     // parallel candidate evaluations (0 = population size)
	Seed                 int64   // master seed for the partitioned RNG
}

// Validate checks every field range.
func (c *Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: PopulationSize %d, need >= 2", ErrInvalidConfig, c.PopulationSize)
	}
	if c.EliteFraction <= 0 || c.EliteFraction > 1 {
		return fmt.Errorf("%w: EliteFraction %v, need (0, 1]", ErrInvalidConfig, c.EliteFraction)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: Iterations %d, need >= 1", ErrInvalidConfig, c.Iterations)
	}
	if c.EpisodesPerCandidate < 1 {
		return fmt.Errorf("%w: EpisodesPerCandidate %d, need >= 1", ErrInvalidConfig, c.EpisodesPerCandidate)
	}
	if c.MaxEpisodeSteps < 1 {
		return fmt.Errorf("%w: MaxEpisodeSteps %d, need >= 1", ErrInvalidConfig, c.MaxEpisodeSteps)
	}
	if c.InitialStd <= 0 {
		return fmt.Errorf("%w: InitialStd %v, need > 0", ErrInvalidConfig, c.InitialStd)
	}
	if c.StdFloor < 0 {
		return fmt.Errorf("%w: StdFloor %v, need >= 0", ErrInvalidConfig, c.StdFloor)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: Workers %v, need >= 0", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// IterationStats summarizes one sample/evaluate/refit round.
type IterationStats struct {
	Iteration   int
	BestReturn  float64
	MeanReturn  float64
	EliteReturn float64 // mean return over the elite set
}

// Result is the outcome of Train.
type Result struct {
	// Weights is the final Gaussian mean: a linear policy with the bias
	// term last (see Act).
	Weights []float64
	History []IterationStats
}

// Act picks the policy's action for an observation: action 1 when
// weights·[obs, 1] >= 0, else action 0. len(weights) = len(obs)+1.
func Act(weights, obs []float64) int {
	z := weights[len(weights)-1] // bias
	for i, o := range obs {
		z += weights[i] * o
	}
	if z >= 0 {
		return 1
	}
	return 0
}

// Evaluate runs episodes of env under a linear policy and returns the mean
// undiscounted return. Episodes stop after maxSteps even if the environment
// has not terminated.
func Evaluate(env Env, weights []float64, episodes, maxSteps int, rng *rand.Rand) float64 {
	total := 0.0
	for e := 0; e < episodes; e++ {
		obs := env.Reset(rng)
		for step := 0; step < maxSteps; step++ {
			next, reward, done := env.Step(Act(weights, obs))
			total += reward
			if done {
				break
			}
			obs = next
		}
	}
	return total / float64(episodes)
}

// Train runs the cross-entropy method against environments produced by
// newEnv. Each worker gets its own Env instance; candidate seeds are drawn
// up front so results do not depend on evaluation order.
func Train(ctx context.Context, cfg Config, newEnv func() Env) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if newEnv == nil {
		return Result{}, ErrNilEnvFactory
	}

	dim := newEnv().ObservationSize() + 1 // plus bias
	eliteCount := int(float64(cfg.PopulationSize) * cfg.EliteFraction)
	if eliteCount < 1 {
		eliteCount = 1
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = cfg.PopulationSize
	}

	prng := ml.NewPartitionedRNG(ml.NewExperimentKey(cfg.Seed))
	sampleRNG := prng.ForSubsystem(ml.SubsystemPopulation)
	seedRNG := prng.ForSubsystem(ml.SubsystemEnvironment)

	mean := make([]float64, dim)
	std := make([]float64, dim)
	for j := range std {
		std[j] = cfg.InitialStd
	}

	var res Result
	for iter := 0; iter < cfg.Iterations; iter++ {
		// sample the population (sequential, keeps the draw order stable)
		population := make([][]float64, cfg.PopulationSize)
		for i := range population {
			w := make([]float64, dim)
			for j := range w {
				w[j] = sampleRNG.NormFloat64()*std[j] + mean[j]
			}
			population[i] = w
		}

		// pre-draw evaluation seeds so parallel scheduling cannot reorder them
		seeds := make([]int64, cfg.PopulationSize)
		for i := range seeds {
			seeds[i] = seedRNG.Int63()
		}

		returns := make([]float64, cfg.PopulationSize)
		err := parallel.ForEach(ctx, cfg.PopulationSize, workers, func(_ context.Context, i int) error {
			env := newEnv()
			episodeRNG := rand.New(rand.NewSource(seeds[i]))
			returns[i] = Evaluate(env, population[i], cfg.EpisodesPerCandidate, cfg.MaxEpisodeSteps, episodeRNG)
			return nil
		})
		if err != nil {
			return Result{}, err
		}

		order := make([]int, cfg.PopulationSize)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return returns[order[a]] > returns[order[b]] })

		elite := make([]float64, eliteCount)
		for j := 0; j < dim; j++ {
			col := make([]float64, eliteCount)
			for e := 0; e < eliteCount; e++ {
				col[e] = population[order[e]][j]
			}
			m, s := stat.MeanStdDev(col, nil)
			if eliteCount == 1 {
				m, s = col[0], 0
			}
			if s < cfg.StdFloor {
				s = cfg.StdFloor
			}
			mean[j], std[j] = m, s
		}
		for e := 0; e < eliteCount; e++ {
			elite[e] = returns[order[e]]
		}

		res.History = append(res.History, IterationStats{
			Iteration:   iter,
			BestReturn:  returns[order[0]],
			MeanReturn:  ml.Mean(returns),
			EliteReturn: ml.Mean(elite),
		})
	}

	res.Weights = append([]float64(nil), mean...)
	return res, nil
}
