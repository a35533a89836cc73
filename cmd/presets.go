package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/datalab-go/datalab/ml/cem"
	"github.com/datalab-go/datalab/ml/genetic"
)

var presetFile string // YAML file with named experiment presets

// Define structs for YAML
type ExperimentPresets struct {
	GA  map[string]GAPreset  `yaml:"ga"`
	CEM map[string]CEMPreset `yaml:"cem"`
}

type GAPreset struct {
	PopulationSize   int     `yaml:"population"`
	ChromosomeLength int     `yaml:"chromosome_length"`
	Generations      int     `yaml:"generations"`
	TournamentSize   int     `yaml:"tournament"`
	MutationRate     float64 `yaml:"mutation"`
}

type CEMPreset struct {
	PopulationSize       int     `yaml:"population"`
	EliteFraction        float64 `yaml:"elite"`
	Iterations           int     `yaml:"iterations"`
	EpisodesPerCandidate int     `yaml:"episodes"`
	MaxEpisodeSteps      int     `yaml:"max_steps"`
	InitialStd           float64 `yaml:"std"`
	StdFloor             float64 `yaml:"std_floor"`
	Workers              int     `yaml:"workers"`
}

// Config materializes the preset; the seed stays a command-line concern so
// one preset can back many replications.
func (p GAPreset) Config(seed int64) genetic.Config {
	return genetic.Config{
		PopulationSize:   p.PopulationSize,
		ChromosomeLength: p.ChromosomeLength,
		Generations:      p.Generations,
		TournamentSize:   p.TournamentSize,
		MutationRate:     p.MutationRate,
		Seed:             seed,
	}
}

func (p CEMPreset) Config(seed int64) cem.Config {
	return cem.Config{
		PopulationSize:       p.PopulationSize,
		EliteFraction:        p.EliteFraction,
		Iterations:           p.Iterations,
		EpisodesPerCandidate: p.EpisodesPerCandidate,
		MaxEpisodeSteps:      p.MaxEpisodeSteps,
		InitialStd:           p.InitialStd,
		StdFloor:             p.StdFloor,
		Workers:              p.Workers,
		Seed:                 seed,
	}
}

func loadPresets(path string) (*ExperimentPresets, error) {
	// Read YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	// Parse YAML
	var presets ExperimentPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	return &presets, nil
}

func GetGAPreset(path string, name string) (GAPreset, error) {
	presets, err := loadPresets(path)
	if err != nil {
		return GAPreset{}, err
	}
	p, ok := presets.GA[name]
	if !ok {
		return GAPreset{}, fmt.Errorf("no GA preset named %q in %s", name, path)
	}
	return p, nil
}

func GetCEMPreset(path string, name string) (CEMPreset, error) {
	presets, err := loadPresets(path)
	if err != nil {
		return CEMPreset{}, err
	}
	p, ok := presets.CEM[name]
	if !ok {
		return CEMPreset{}, fmt.Errorf("no CEM preset named %q in %s", name, path)
	}
	return p, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&presetFile, "presets", "presets.yaml", "YAML file with named experiment presets")
}
