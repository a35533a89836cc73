// Package ml is the root of datalab's analysis toolkit.
//
// # Reading Guide
//
// Start with these files to understand the shared infrastructure:
//   - table.go: rectangular float64 table validation used at every package boundary
//   - rng.go: ExperimentKey and per-subsystem RNG derivation for reproducible runs
//   - describe.go: mean/percentile/stddev summary helpers
//
// # Architecture
//
// The ml package holds shared plumbing; the algorithms live in sub-packages:
//   - ml/pareto: pairwise Pareto-dominance front extraction
//   - ml/parallel: bounded parallel execution over independent tasks
//   - ml/fitdist: distribution fitting with chi-squared and Kolmogorov-Smirnov tests
//   - ml/metrics: confusion matrix, ROC curve and AUC
//   - ml/cv: train/test splitting and stratified k-fold
//   - ml/linear: standard scaler and logistic regression (gradient descent)
//   - ml/genetic: binary-chromosome genetic algorithm
//   - ml/cem: cross-entropy method over a simulation environment (CartPole)
//   - ml/dataset: Titanic CSV loading and feature preparation
//
// Every stochastic sub-package takes either an explicit *rand.Rand or a seed
// routed through PartitionedRNG, so results are reproducible bit-for-bit from
// a single master seed.
package ml
