// Package fitdist fits candidate probability distributions to observed data
// and scores the fits with Kolmogorov-Smirnov and chi-squared
// goodness-of-fit tests.
package fitdist

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/datalab-go/datalab/ml"
)

var (
	// ErrTooFewObservations indicates a sample too small to test.
	ErrTooFewObservations = errors.New("fitdist: need at least 8 observations")

	// ErrNonPositiveData indicates data outside a candidate's support.
	ErrNonPositiveData = errors.New("fitdist: data outside distribution support")

	// ErrBadBinCount indicates too few chi-squared bins for the candidate's
	// parameter count.
	ErrBadBinCount = errors.New("fitdist: bin count leaves no degrees of freedom")
)

const minObservations = 8

// Candidate is a fitted distribution under test.
type Candidate interface {
	// Name identifies the distribution family ("normal", "exponential", ...).
	Name() string
	// CDF evaluates the fitted cumulative distribution function.
	CDF(x float64) float64
	// NumParams is the number of parameters estimated from the data;
	// it reduces the chi-squared degrees of freedom.
	NumParams() int
}

type fitted struct {
	name    string
	cdf     func(float64) float64
	nparams int
}

func (f fitted) Name() string          { return f.name }
func (f fitted) CDF(x float64) float64 { return f.cdf(x) }
func (f fitted) NumParams() int        { return f.nparams }

// FitNormal estimates a normal distribution from data by mean and standard
// deviation.
func FitNormal(data []float64) (Candidate, error) {
	if err := checkSample(data); err != nil {
		return nil, err
	}
	mu, sigma := stat.MeanStdDev(data, nil)
	if sigma == 0 {
		return nil, fmt.Errorf("fitdist: zero variance, cannot fit normal")
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma}
	return fitted{name: "normal", cdf: d.CDF, nparams: 2}, nil
}

// FitExponential estimates an exponential distribution by its rate 1/mean.
// All observations must be non-negative.
func FitExponential(data []float64) (Candidate, error) {
	if err := checkSample(data); err != nil {
		return nil, err
	}
	mean := stat.Mean(data, nil)
	for i, v := range data {
		if v < 0 {
			return nil, fmt.Errorf("%w: observation %d = %v is negative", ErrNonPositiveData, i, v)
		}
	}
	if mean <= 0 {
		return nil, fmt.Errorf("%w: mean is not positive", ErrNonPositiveData)
	}
	d := distuv.Exponential{Rate: 1 / mean}
	return fitted{name: "exponential", cdf: d.CDF, nparams: 1}, nil
}

// FitLogNormal estimates a log-normal distribution from the mean and
// standard deviation of the log-observations. All observations must be
// strictly positive.
func FitLogNormal(data []float64) (Candidate, error) {
	if err := checkSample(data); err != nil {
		return nil, err
	}
	logs := make([]float64, len(data))
	for i, v := range data {
		if v <= 0 {
			return nil, fmt.Errorf("%w: observation %d = %v is not positive", ErrNonPositiveData, i, v)
		}
		logs[i] = math.Log(v)
	}
	mu, sigma := stat.MeanStdDev(logs, nil)
	if sigma == 0 {
		return nil, fmt.Errorf("fitdist: zero log-variance, cannot fit log-normal")
	}
	d := distuv.LogNormal{Mu: mu, Sigma: sigma}
	return fitted{name: "lognormal", cdf: d.CDF, nparams: 2}, nil
}

// Result is one goodness-of-fit score.
type Result struct {
	Statistic float64
	PValue    float64
}

// KolmogorovSmirnov computes the one-sample KS statistic of data against the
// candidate's CDF, with the asymptotic p-value (Marsaglia approximation of
// the Kolmogorov distribution). Parameters estimated from the same data make
// the p-value conservative; use it for ranking, not strict inference.
func KolmogorovSmirnov(data []float64, c Candidate) (Result, error) {
	if err := checkSample(data); err != nil {
		return Result{}, err
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := c.CDF(x)
		upper := (float64(i)+1)/n - f
		lower := f - float64(i)/n
		if upper > d {
			d = upper
		}
		if lower > d {
			d = lower
		}
	}
	return Result{Statistic: d, PValue: ksPValue(d, len(sorted))}, nil
}

// ksPValue approximates P(D_n > d) via the Kolmogorov limiting distribution
// with a small-sample correction to the effective sqrt(n).
func ksPValue(d float64, n int) float64 {
	if d <= 0 {
		return 1
	}
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	sum := 0.0
	for j := 1; j <= 100; j++ {
		term := math.Exp(-2 * float64(j*j) * lambda * lambda)
		if j%2 == 1 {
			sum += term
		} else {
			sum -= term
		}
		if term < 1e-12 {
			break
		}
	}
	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ChiSquared computes a chi-squared goodness-of-fit statistic over bins
// bounded by sample quantiles, with expected counts from the candidate CDF.
// The first and last bins are open-ended so the expected counts sum to n.
// Degrees of freedom are bins-1-NumParams; bin counts that leave none are
// rejected.
func ChiSquared(data []float64, c Candidate, bins int) (Result, error) {
	if err := checkSample(data); err != nil {
		return Result{}, err
	}
	dof := bins - 1 - c.NumParams()
	if dof < 1 {
		return Result{}, fmt.Errorf("%w: %d bins, %d estimated parameters",
			ErrBadBinCount, bins, c.NumParams())
	}
	if len(data) < 5*bins {
		return Result{}, fmt.Errorf("%w: %d observations for %d bins (need %d)",
			ErrTooFewObservations, len(data), bins, 5*bins)
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	n := len(sorted)

	// interior edges at equally spaced sample quantiles
	edges := make([]float64, bins-1)
	for i := range edges {
		edges[i] = ml.Percentile(sorted, 100*float64(i+1)/float64(bins))
	}

	observed := make([]float64, bins)
	for _, x := range sorted {
		b := sort.SearchFloat64s(edges, x)
		// SearchFloat64s puts x == edge into the left bin's right neighbor;
		// nudge exact matches left so quantile edges keep their row.
		if b > 0 && x == edges[b-1] {
			b--
		}
		if b >= bins {
			b = bins - 1
		}
		observed[b]++
	}

	statVal := 0.0
	prevCDF := 0.0
	for b := 0; b < bins; b++ {
		var hi float64
		if b == bins-1 {
			hi = 1
		} else {
			hi = c.CDF(edges[b])
		}
		expected := (hi - prevCDF) * float64(n)
		prevCDF = hi
		if expected <= 0 {
			expected = math.SmallestNonzeroFloat64
		}
		diff := observed[b] - expected
		statVal += diff * diff / expected
	}

	chi2 := distuv.ChiSquared{K: float64(dof)}
	return Result{Statistic: statVal, PValue: chi2.Survival(statVal)}, nil
}

// Fit pairs a candidate with its KS score for ranking.
type Fit struct {
	Candidate Candidate
	KS        Result
}

// RankFit scores every candidate with the KS test and returns the fits
// ordered best-first (smallest statistic).
func RankFit(data []float64, candidates []Candidate) ([]Fit, error) {
	if err := checkSample(data); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("fitdist: no candidates supplied")
	}
	fits := make([]Fit, 0, len(candidates))
	for _, c := range candidates {
		r, err := KolmogorovSmirnov(data, c)
		if err != nil {
			return nil, err
		}
		fits = append(fits, Fit{Candidate: c, KS: r})
	}
	sort.Slice(fits, func(i, j int) bool {
		return fits[i].KS.Statistic < fits[j].KS.Statistic
	})
	return fits, nil
}

func checkSample(data []float64) error {
	if len(data) < minObservations {
		return fmt.Errorf("%w: got %d", ErrTooFewObservations, len(data))
	}
	if err := ml.ValidateVector(data); err != nil {
		return fmt.Errorf("fitdist: %w", err)
	}
	return nil
}
