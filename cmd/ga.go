package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datalab-go/datalab/ml/genetic"
)

var (
	gaPopulation int     // Individuals per generation
	gaLength     int     // Bits per chromosome
	gaGens       int     // Generations to evolve
	gaTournament int     // Contestants per selection draw
	gaMutation   float64 // Per-bit mutation probability
	gaSeed       int64   // Master seed
	gaPreset     string  // Named preset from the presets file
)

var gaCmd = &cobra.Command{
	Use:   "ga",
	Short: "Evolve a bit string toward an all-ones target with a genetic algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := genetic.Config{
			PopulationSize:   gaPopulation,
			ChromosomeLength: gaLength,
			Generations:      gaGens,
			TournamentSize:   gaTournament,
			MutationRate:     gaMutation,
			Seed:             gaSeed,
		}
		if gaPreset != "" {
			p, err := GetGAPreset(presetFile, gaPreset)
			if err != nil {
				logrus.Fatalf("Loading GA preset: %v", err)
			}
			cfg = p.Config(gaSeed)
			logrus.Infof("Using preset %q", gaPreset)
		}

		target := make(genetic.Chromosome, cfg.ChromosomeLength)
		for i := range target {
			target[i] = true
		}

		res, err := genetic.Run(cfg, target)
		if err != nil {
			logrus.Fatalf("GA run: %v", err)
		}

		for _, g := range res.History {
			if g.Generation%10 == 0 || g.Generation == cfg.Generations {
				logrus.Infof("generation %3d: best=%d/%d mean=%.1f",
					g.Generation, g.BestFitness, cfg.ChromosomeLength, g.MeanFitness)
			}
		}
		fmt.Printf("Best fitness: %d/%d after %d generations\n",
			res.BestFitness, cfg.ChromosomeLength, cfg.Generations)
	},
}

func init() {
	gaCmd.Flags().IntVar(&gaPopulation, "population", 100, "Individuals per generation")
	gaCmd.Flags().IntVar(&gaLength, "length", 64, "Bits per chromosome")
	gaCmd.Flags().IntVar(&gaGens, "generations", 200, "Generations to evolve")
	gaCmd.Flags().IntVar(&gaTournament, "tournament", 3, "Contestants per selection draw")
	gaCmd.Flags().Float64Var(&gaMutation, "mutation", 0.01, "Per-bit mutation probability")
	gaCmd.Flags().Int64Var(&gaSeed, "seed", 42, "Master seed")
	gaCmd.Flags().StringVar(&gaPreset, "preset", "", "Named preset from the presets file")

	rootCmd.AddCommand(gaCmd)
}
