package bot

import (
	"log"
	"sync"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

// DefaultStrategy is used when a game is created without naming an opponent.
const DefaultStrategy = "random"

// Strategy picks a column for side. ok is false when it finds nothing playable.
type Strategy interface {
	ChooseColumn(board domain.Board, side domain.PlayerID) (column int, ok bool)
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(board domain.Board, side domain.PlayerID) (int, bool)

func (f StrategyFunc) ChooseColumn(board domain.Board, side domain.PlayerID) (int, bool) {
	return f(board, side)
}

// SelectMove returns the column the side to move should play in gs.
// It returns false for finished games, full boards, and strategies that
// come back with an unplayable column.
func SelectMove(gs *domain.GameSession, strategy Strategy) (int, bool) {
	if gs.IsFinished() {
		return -1, false
	}
	if len(gs.Board.ValidMoves()) == 0 {
		return -1, false
	}

	column, ok := strategy.ChooseColumn(gs.Board, gs.CurrentPlayer)
	if !ok {
		return -1, false
	}
	if !gs.Board.IsColumnOpen(column) {
		log.Printf("[BOT] Strategy %q picked unplayable column %d in game %s", gs.Opponent, column, gs.ID)
		return -1, false
	}
	return column, true
}

// Registry maps opponent names to strategies. Games pick one by name when they are created.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry registers the random opponent under DefaultStrategy.
func NewRegistry(seed int64) *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(DefaultStrategy, NewRandomStrategy(seed))
	return r
}

func (r *Registry) Register(name string, strategy Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = strategy
}

func (r *Registry) Lookup(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[name]
	if !ok {
		return nil, domain.ErrUnknownBot
	}
	return strategy, nil
}

func (r *Registry) Has(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}
