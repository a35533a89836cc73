package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datalab-go/datalab/ml/cem"
)

var (
	cemPopulation int     // Candidate policies per iteration
	cemElite      float64 // Elite fraction
	cemIterations int     // Sample/evaluate/refit rounds
	cemEpisodes   int     // Episodes per candidate
	cemMaxSteps   int     // Episode step cap
	cemStd        float64 // Initial sampling spread
	cemWorkers    int     // Parallel evaluations
	cemSeed       int64   // Master seed
	cemPreset     string  // Named preset from the presets file
)

var cemCmd = &cobra.Command{
	Use:   "cem",
	Short: "Train a CartPole balancing policy with the cross-entropy method",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cem.Config{
			PopulationSize:       cemPopulation,
			EliteFraction:        cemElite,
			Iterations:           cemIterations,
			EpisodesPerCandidate: cemEpisodes,
			MaxEpisodeSteps:      cemMaxSteps,
			InitialStd:           cemStd,
			StdFloor:             0.05,
			Workers:              cemWorkers,
			Seed:                 cemSeed,
		}
		if cemPreset != "" {
			p, err := GetCEMPreset(presetFile, cemPreset)
			if err != nil {
				logrus.Fatalf("Loading CEM preset: %v", err)
			}
			cfg = p.Config(cemSeed)
			logrus.Infof("Using preset %q", cemPreset)
		}

		res, err := cem.Train(context.Background(), cfg, func() cem.Env { return cem.NewCartPole() })
		if err != nil {
			logrus.Fatalf("CEM training: %v", err)
		}

		for _, it := range res.History {
			logrus.Infof("iteration %2d: best=%.0f mean=%.1f elite=%.1f",
				it.Iteration, it.BestReturn, it.MeanReturn, it.EliteReturn)
		}

		// score the fitted mean policy on fresh episodes
		final := cem.Evaluate(cem.NewCartPole(), res.Weights, 20, cfg.MaxEpisodeSteps,
			rand.New(rand.NewSource(cfg.Seed+1)))
		fmt.Printf("Mean return of trained policy over 20 episodes: %.1f (cap %d)\n",
			final, cfg.MaxEpisodeSteps)
	},
}

func init() {
	cemCmd.Flags().IntVar(&cemPopulation, "population", 50, "Candidate policies per iteration")
	cemCmd.Flags().Float64Var(&cemElite, "elite", 0.2, "Elite fraction")
	cemCmd.Flags().IntVar(&cemIterations, "iterations", 20, "Sample/evaluate/refit rounds")
	cemCmd.Flags().IntVar(&cemEpisodes, "episodes", 3, "Episodes per candidate")
	cemCmd.Flags().IntVar(&cemMaxSteps, "max-steps", 500, "Episode step cap")
	cemCmd.Flags().Float64Var(&cemStd, "std", 1.0, "Initial sampling spread")
	cemCmd.Flags().IntVar(&cemWorkers, "workers", 0, "Parallel evaluations (0 = population size)")
	cemCmd.Flags().Int64Var(&cemSeed, "seed", 42, "Master seed")
	cemCmd.Flags().StringVar(&cemPreset, "preset", "", "Named preset from the presets file")

	rootCmd.AddCommand(cemCmd)
}
