package hsflow

import (
	"context"
	"log"
	"testing"
)

func Benchmark_Estimate(b *testing.B) {
	SetLogger(nil)
	defer SetLogger(log.Printf)

	cur := texturedFrame(b, 320, 240, 0)
	ref := texturedFrame(b, 320, 240, 2)
	cfg := Config{BlockSize: 4, Alpha: 1, Sigma: 1, MaxIterations: 100}

	model, err := NewBlockFrameModel(cur, ref, cfg.BlockSize)
	if err != nil {
		b.Fatalf("could not build the block model: %v", err)
	}
	s, err := NewSolver(model, cfg)
	if err != nil {
		b.Fatalf("could not build the solver: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := s.Estimate(context.Background()); err != nil {
			b.FailNow()
		}
	}
}
