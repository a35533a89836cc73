package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/datalab-go/datalab/ml"
	"github.com/datalab-go/datalab/ml/cv"
	"github.com/datalab-go/datalab/ml/dataset"
	"github.com/datalab-go/datalab/ml/linear"
	"github.com/datalab-go/datalab/ml/metrics"
)

var (
	trainData  string  // Titanic-format CSV path
	trainFolds int     // Stratified folds
	trainSeed  int64   // Master seed
	trainLR    float64 // Gradient descent step size
	trainL2    float64 // Ridge penalty
	trainIters int     // Gradient steps
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train logistic regression on the Titanic data with stratified k-fold ROC/AUC",
	Run: func(cmd *cobra.Command, args []string) {
		passengers, err := dataset.Load(trainData)
		if err != nil {
			logrus.Fatalf("Loading data: %v", err)
		}

		s := dataset.Summarize(passengers)
		logrus.Infof("%d passengers, %.1f%% survived (female %.1f%%, male %.1f%%)",
			s.Total, 100*s.SurvivalRate, 100*s.BySex["female"], 100*s.BySex["male"])

		X, y, err := dataset.Features(passengers)
		if err != nil {
			logrus.Fatalf("Building features: %v", err)
		}

		prng := ml.NewPartitionedRNG(ml.NewExperimentKey(trainSeed))
		splits, err := cv.StratifiedKFold(y, trainFolds, prng.ForSubsystem(ml.SubsystemShuffle))
		if err != nil {
			logrus.Fatalf("Building folds: %v", err)
		}

		var aucs []float64
		for f, split := range splits {
			auc, err := foldAUC(X, y, split)
			if err != nil {
				logrus.Fatalf("Fold %d: %v", f, err)
			}
			logrus.Infof("fold %d: AUC %.4f (train %d / test %d)", f, auc, len(split.Train), len(split.Test))
			aucs = append(aucs, auc)
		}
		fmt.Printf("Mean AUC over %d folds: %.4f (min %.4f, max %.4f)\n",
			trainFolds, ml.Mean(aucs), ml.Percentile(aucs, 0), ml.Percentile(aucs, 100))
	},
}

// foldAUC fits scaler and model on the train side only, then scores the
// held-out fold.
func foldAUC(X *mat.Dense, y []bool, split cv.Split) (float64, error) {
	trainX, trainY := subset(X, y, split.Train)
	testX, testY := subset(X, y, split.Test)

	var scaler linear.StandardScaler
	scaledTrain, err := scaler.FitTransform(trainX)
	if err != nil {
		return 0, err
	}
	scaledTest, err := scaler.Transform(testX)
	if err != nil {
		return 0, err
	}

	model := linear.LogisticRegression{LearningRate: trainLR, L2: trainL2, MaxIter: trainIters}
	if err := model.Fit(scaledTrain, trainY); err != nil {
		return 0, err
	}
	proba, err := model.PredictProba(scaledTest)
	if err != nil {
		return 0, err
	}
	curve, err := metrics.ROC(testY, proba)
	if err != nil {
		return 0, err
	}
	return curve.AUC(), nil
}

func subset(X *mat.Dense, y []bool, idx []int) (*mat.Dense, []bool) {
	_, cols := X.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	labels := make([]bool, len(idx))
	for i, r := range idx {
		out.SetRow(i, mat.Row(nil, r, X))
		labels[i] = y[r]
	}
	return out, labels
}

func init() {
	trainCmd.Flags().StringVar(&trainData, "data", "", "Titanic-format CSV file (required)")
	trainCmd.Flags().IntVar(&trainFolds, "folds", 5, "Stratified folds")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 42, "Master seed")
	trainCmd.Flags().Float64Var(&trainLR, "learning-rate", 0.1, "Gradient descent step size")
	trainCmd.Flags().Float64Var(&trainL2, "l2", 0.01, "Ridge penalty")
	trainCmd.Flags().IntVar(&trainIters, "max-iter", 2000, "Gradient steps")
	_ = trainCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(trainCmd)
}
