package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOnes(n int) Chromosome {
	c := make(Chromosome, n)
	for i := range c {
		c[i] = true
	}
	return c
}

func baseConfig() Config {
	return Config{
		PopulationSize:   100,
		ChromosomeLength: 16,
		Generations:      200,
		TournamentSize:   3,
		MutationRate:     0.01,
		Seed:             42,
	}
}

func TestFitness(t *testing.T) {
	ref := Chromosome{true, false, true, false}
	assert.Equal(t, 4, Fitness(ref, ref))
	assert.Equal(t, 0, Fitness(Chromosome{false, true, false, true}, ref))
	assert.Equal(t, 2, Fitness(Chromosome{true, true, true, true}, ref))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"population too small", func(c *Config) { c.PopulationSize = 1 }},
		{"chromosome too short", func(c *Config) { c.ChromosomeLength = 1 }},
		{"no generations", func(c *Config) { c.Generations = 0 }},
		{"tournament zero", func(c *Config) { c.TournamentSize = 0 }},
		{"tournament exceeds population", func(c *Config) { c.TournamentSize = 101 }},
		{"negative mutation rate", func(c *Config) { c.MutationRate = -0.1 }},
		{"mutation rate above one", func(c *Config) { c.MutationRate = 1.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	cfg := baseConfig()
	assert.NoError(t, cfg.Validate())
}

func TestRun_TargetLengthMismatch(t *testing.T) {
	cfg := baseConfig()
	_, err := Run(cfg, allOnes(8))
	assert.ErrorIs(t, err, ErrTargetLength)
}

func TestRun_ImprovesTowardTarget(t *testing.T) {
	cfg := baseConfig()
	res, err := Run(cfg, allOnes(cfg.ChromosomeLength))
	require.NoError(t, err)

	require.Len(t, res.History, cfg.Generations+1)
	first := res.History[0].BestFitness
	last := res.History[len(res.History)-1].BestFitness
	assert.Greater(t, last, first, "evolution should improve on the random start")
	assert.GreaterOrEqual(t, res.BestFitness, cfg.ChromosomeLength-1,
		"16-bit target should be essentially solved in 200 generations")
}

func TestRun_ElitismKeepsBestMonotone(t *testing.T) {
	cfg := baseConfig()
	res, err := Run(cfg, allOnes(cfg.ChromosomeLength))
	require.NoError(t, err)

	for i := 1; i < len(res.History); i++ {
		assert.GreaterOrEqual(t, res.History[i].BestFitness, res.History[i-1].BestFitness,
			"generation %d", i)
	}
}

func TestRun_MeanNeverExceedsBest(t *testing.T) {
	cfg := baseConfig()
	res, err := Run(cfg, allOnes(cfg.ChromosomeLength))
	require.NoError(t, err)
	for _, g := range res.History {
		assert.LessOrEqual(t, g.MeanFitness, float64(g.BestFitness), "generation %d", g.Generation)
	}
}

func TestRun_DeterministicForSeed(t *testing.T) {
	cfg := baseConfig()
	ref := allOnes(cfg.ChromosomeLength)

	a, err := Run(cfg, ref)
	require.NoError(t, err)
	b, err := Run(cfg, ref)
	require.NoError(t, err)

	assert.Equal(t, a.Best, b.Best)
	assert.Equal(t, a.History, b.History)
}

func TestRun_SeedsDiverge(t *testing.T) {
	cfg := baseConfig()
	ref := allOnes(cfg.ChromosomeLength)

	a, err := Run(cfg, ref)
	require.NoError(t, err)

	cfg.Seed = 43
	b, err := Run(cfg, ref)
	require.NoError(t, err)

	assert.NotEqual(t, a.History, b.History, "different seeds should explore differently")
}

func TestRun_BestFitnessMatchesBestChromosome(t *testing.T) {
	cfg := baseConfig()
	ref := allOnes(cfg.ChromosomeLength)
	res, err := Run(cfg, ref)
	require.NoError(t, err)
	assert.Equal(t, res.BestFitness, Fitness(res.Best, ref))
}

func TestRun_ZeroMutationStillSelects(t *testing.T) {
	cfg := baseConfig()
	cfg.MutationRate = 0
	res, err := Run(cfg, allOnes(cfg.ChromosomeLength))
	require.NoError(t, err)
	last := res.History[len(res.History)-1]
	assert.GreaterOrEqual(t, last.BestFitness, res.History[0].BestFitness)
}
