package pareto

import (
	"context"
	"math/rand"
	"testing"
)

func randomScores(n, m int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, m)
		for j := range scores[i] {
			scores[i][j] = rng.Float64()
		}
	}
	return scores
}

func BenchmarkFront_1000x2(b *testing.B) {
	scores := randomScores(1000, 2, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Front(scores); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFront_1000x5(b *testing.B) {
	scores := randomScores(1000, 5, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Front(scores); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFrontParallel_1000x5(b *testing.B) {
	scores := randomScores(1000, 5, 1)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FrontParallel(ctx, scores, 0); err != nil {
			b.Fatal(err)
		}
	}
}
