package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datalab-go/datalab/ml/pareto"
)

var (
	paretoInput   string // CSV file of objective scores, one candidate per row
	paretoHeader  bool   // Skip the first CSV row
	paretoWorkers int    // Parallel workers (0 = sequential)
)

var paretoCmd = &cobra.Command{
	Use:   "pareto",
	Short: "Identify the Pareto front of a multi-objective score table",
	Run: func(cmd *cobra.Command, args []string) {
		scores, err := readScoreTable(paretoInput, paretoHeader)
		if err != nil {
			logrus.Fatalf("Reading score table: %v", err)
		}
		logrus.Infof("Loaded %d candidates with %d objectives", len(scores), len(scores[0]))

		var front []int
		if paretoWorkers > 0 {
			front, err = pareto.FrontParallel(context.Background(), scores, paretoWorkers)
		} else {
			front, err = pareto.Front(scores)
		}
		if err != nil {
			logrus.Fatalf("Pareto filter: %v", err)
		}

		fmt.Printf("Pareto front: %d of %d candidates\n", len(front), len(scores))
		for _, i := range front {
			fmt.Printf("  candidate %d: %v\n", i, scores[i])
		}
	},
}

// readScoreTable parses a headerless (or single-header) CSV of floats.
func readScoreTable(path string, skipHeader bool) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	var scores [][]float64
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if row == 1 && skipHeader {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", row, j+1, err)
			}
		}
		scores = append(scores, vals)
	}
	return scores, nil
}

func init() {
	paretoCmd.Flags().StringVar(&paretoInput, "input", "", "CSV file of objective scores (required)")
	paretoCmd.Flags().BoolVar(&paretoHeader, "header", false, "Skip the first CSV row")
	paretoCmd.Flags().IntVar(&paretoWorkers, "workers", 0, "Parallel workers (0 = sequential)")
	_ = paretoCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(paretoCmd)
}
