package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datalab-go/datalab/ml/fitdist"
)

var (
	fitInput  string // CSV file with the sample
	fitColumn int    // Zero-based column to fit
	fitHeader bool   // Skip the first CSV row
	fitBins   int    // Chi-squared bins
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit candidate distributions to a data column and rank by goodness of fit",
	Run: func(cmd *cobra.Command, args []string) {
		table, err := readScoreTable(fitInput, fitHeader)
		if err != nil {
			logrus.Fatalf("Reading sample: %v", err)
		}
		data := make([]float64, 0, len(table))
		for i, row := range table {
			if fitColumn >= len(row) {
				logrus.Fatalf("Row %d has no column %d", i+1, fitColumn)
			}
			data = append(data, row[fitColumn])
		}
		logrus.Infof("Fitting %d observations", len(data))

		var candidates []fitdist.Candidate
		for _, fit := range []func([]float64) (fitdist.Candidate, error){
			fitdist.FitNormal, fitdist.FitExponential, fitdist.FitLogNormal,
		} {
			c, err := fit(data)
			if err != nil {
				logrus.Warnf("Skipping candidate: %v", err)
				continue
			}
			candidates = append(candidates, c)
		}

		fits, err := fitdist.RankFit(data, candidates)
		if err != nil {
			logrus.Fatalf("Ranking fits: %v", err)
		}

		fmt.Printf("%-12s %10s %10s %12s %12s\n", "candidate", "KS stat", "KS p", "chi2 stat", "chi2 p")
		for _, f := range fits {
			line := fmt.Sprintf("%-12s %10.4f %10.4f", f.Candidate.Name(), f.KS.Statistic, f.KS.PValue)
			if chi2, err := fitdist.ChiSquared(data, f.Candidate, fitBins); err == nil {
				line += fmt.Sprintf(" %12.2f %12.4f", chi2.Statistic, chi2.PValue)
			} else {
				logrus.Debugf("chi-squared unavailable for %s: %v", f.Candidate.Name(), err)
				line += fmt.Sprintf(" %12s %12s", "-", "-")
			}
			fmt.Println(line)
		}
	},
}

func init() {
	fitCmd.Flags().StringVar(&fitInput, "input", "", "CSV file with the sample (required)")
	fitCmd.Flags().IntVar(&fitColumn, "column", 0, "Zero-based column to fit")
	fitCmd.Flags().BoolVar(&fitHeader, "header", false, "Skip the first CSV row")
	fitCmd.Flags().IntVar(&fitBins, "bins", 10, "Chi-squared bins")
	_ = fitCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(fitCmd)
}
