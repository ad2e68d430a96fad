package bot

import (
	"math/rand/v2"
	"sync"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

// RandomStrategy picks uniformly among the open columns.
type RandomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomStrategy seeds the generator with seed, or randomly when seed is 0.
func NewRandomStrategy(seed int64) *RandomStrategy {
	var src *rand.PCG
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	}
	return &RandomStrategy{rng: rand.New(src)}
}

func (s *RandomStrategy) ChooseColumn(board domain.Board, _ domain.PlayerID) (int, bool) {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return -1, false
	}

	// *rand.Rand is not safe for concurrent use
	s.mu.Lock()
	idx := s.rng.IntN(len(validColumns))
	s.mu.Unlock()

	return validColumns[idx], true
}
