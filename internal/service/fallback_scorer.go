package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/hiresense/backend/config"
)

// FallbackScorer produces the neutral-band score used when the answer
// evaluator is unavailable. It implements the same "give me a score" role as
// the real evaluator so tests can swap in a seeded source.
type FallbackScorer interface {
	Score() int
}

type randomFallbackScorer struct {
	mu  sync.Mutex
	rnd *rand.Rand
	min int
	max int
}

func NewFallbackScorer(cfg *config.Config) FallbackScorer {
	return NewFallbackScorerWithSource(
		cfg.Assessment.FallbackScoreMin,
		cfg.Assessment.FallbackScoreMax,
		rand.NewSource(time.Now().UnixNano()),
	)
}

// NewFallbackScorerWithSource allows a fixed seed for deterministic tests.
func NewFallbackScorerWithSource(min, max int, src rand.Source) FallbackScorer {
	if max < min {
		max = min
	}
	return &randomFallbackScorer{rnd: rand.New(src), min: min, max: max}
}

func (s *randomFallbackScorer) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.min + s.rnd.Intn(s.max-s.min+1)
}
