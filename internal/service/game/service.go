package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/backend/pkg/uid"
)

const recordTimeout = 10 * time.Second

// SessionStore is the only place game state lives between requests.
type SessionStore interface {
	Create(id string, session domain.GameSession) error
	Get(id string) (domain.GameSession, bool)
	Update(id string, fn func(session *domain.GameSession) error) (domain.GameSession, error)
	List() []domain.GameSession
}

// ResultRecorder archives rounds once they are won or drawn.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result domain.RoundResult) error
}

// Publisher is notified with the new snapshot after every successful change.
type Publisher interface {
	Publish(session domain.GameSession)
}

// Service is the entry point for game logic
type Service struct {
	store     SessionStore
	bots      *bot.Registry
	opponent  string
	recorders []ResultRecorder
	publisher Publisher
	now       func() time.Time
	newID     func() string
	pending   sync.WaitGroup
}

type Option func(*Service)

func WithRecorder(r ResultRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorders = append(s.recorders, r)
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithDefaultOpponent sets the strategy used when a game is created without one.
func WithDefaultOpponent(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.opponent = name
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store SessionStore, bots *bot.Registry, opts ...Option) *Service {
	s := &Service{
		store:    store,
		bots:     bots,
		opponent: bot.DefaultStrategy,
		now:      time.Now,
		newID:    uid.GenerateGameID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateOptions struct {
	// Opponent names the bot strategy; empty means the service default.
	Opponent string
}

// CreateSession starts a new game with an empty board and the starting player to move.
func (s *Service) CreateSession(ctx context.Context, opts CreateOptions) (domain.GameSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameSession{}, err
	}

	opponent := opts.Opponent
	if opponent == "" {
		opponent = s.opponent
	}
	if !s.bots.Has(opponent) {
		return domain.GameSession{}, domain.ErrUnknownBot
	}

	session := domain.NewGameSession(s.newID(), opponent, s.now())
	if err := s.store.Create(session.ID, session); err != nil {
		return domain.GameSession{}, err
	}

	s.publish(session)
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, gameID string) (domain.GameSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameSession{}, err
	}

	session, ok := s.store.Get(gameID)
	if !ok {
		return domain.GameSession{}, domain.ErrSessionMissing
	}
	return session, nil
}

// ApplyMove drops a disk for side. side must be the player whose turn it is.
func (s *Service) ApplyMove(ctx context.Context, gameID string, column int, side domain.PlayerID) (domain.GameSession, error) {
	return s.apply(ctx, gameID, "move", func(gs *domain.GameSession, now time.Time) error {
		_, err := gs.Play(side, column, now)
		return err
	})
}

// ApplyOpponentMove lets the game's bot strategy choose a column and plays it
// through the same path as a human move.
func (s *Service) ApplyOpponentMove(ctx context.Context, gameID string) (domain.GameSession, error) {
	return s.apply(ctx, gameID, "opponent move", func(gs *domain.GameSession, now time.Time) error {
		if gs.IsFinished() {
			return domain.ErrNoValidMove
		}
		if gs.CurrentPlayer != domain.OpponentPlayer {
			return domain.ErrNotYourTurn
		}

		strategy, err := s.bots.Lookup(gs.Opponent)
		if err != nil {
			// the name was accepted at creation, so the stored game is wrong
			return domain.ErrCorruptSession
		}

		column, ok := bot.SelectMove(gs, strategy)
		if !ok {
			return domain.ErrNoValidMove
		}

		_, err = gs.Play(domain.OpponentPlayer, column, now)
		return err
	})
}

// Reset clears the board for a new round. Scores and identity are kept.
func (s *Service) Reset(ctx context.Context, gameID string) (domain.GameSession, error) {
	return s.apply(ctx, gameID, "reset", func(gs *domain.GameSession, now time.Time) error {
		gs.Reset(now)
		return nil
	})
}

// apply runs one validate-apply-detect step under the game's lock. The stored game
// only changes when the whole step succeeds.
func (s *Service) apply(ctx context.Context, gameID, op string, fn func(gs *domain.GameSession, now time.Time) error) (domain.GameSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameSession{}, err
	}

	var finished bool
	updated, err := s.store.Update(gameID, func(gs *domain.GameSession) error {
		if err := gs.Check(); err != nil {
			return err
		}
		wasFinished := gs.IsFinished()
		if err := fn(gs, s.now()); err != nil {
			return err
		}
		finished = !wasFinished && gs.IsFinished()
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			log.Printf("[GAME] %s on game %s aborted: %v", op, gameID, err)
		}
		return domain.GameSession{}, err
	}

	s.publish(updated)
	if finished {
		log.Printf("[GAME] Game %s round %d finished: %s (winner %d)", updated.ID, updated.Round, updated.Status, updated.Winner)
		s.recordAsync(updated.Result())
	}
	return updated, nil
}

func (s *Service) publish(session domain.GameSession) {
	if s.publisher != nil {
		s.publisher.Publish(session)
	}
}

// recordAsync hands the result to every recorder in the background so a slow
// archive never holds up the move that finished the round.
func (s *Service) recordAsync(result domain.RoundResult) {
	for _, r := range s.recorders {
		s.pending.Add(1)
		go func(r ResultRecorder) {
			defer s.pending.Done()

			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()

			if err := r.RecordResult(ctx, result); err != nil {
				log.Printf("[GAME] Error recording game %s round %d: %v", result.GameID, result.Round, err)
				return
			}
			log.Printf("[GAME] Game %s round %d recorded", result.GameID, result.Round)
		}(r)
	}
}

// Wait blocks until background recordings have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// GameSummary is the public listing view of an unfinished game.
type GameSummary struct {
	GameID        string          `json:"gameId"`
	CurrentPlayer domain.PlayerID `json:"currentPlayer"`
	MoveCount     int             `json:"moveCount"`
	Round         int             `json:"round"`
	Scores        domain.Scores   `json:"scores"`
	Opponent      string          `json:"opponent"`
	StartedAt     time.Time       `json:"startedAt"`
}

// GetActiveGames lists games that are still being played.
func (s *Service) GetActiveGames() []GameSummary {
	sessions := s.store.List()
	out := make([]GameSummary, 0, len(sessions))
	for _, gs := range sessions {
		if gs.IsFinished() {
			continue
		}
		out = append(out, GameSummary{
			GameID:        gs.ID,
			CurrentPlayer: gs.CurrentPlayer,
			MoveCount:     gs.MoveCount,
			Round:         gs.Round,
			Scores:        gs.Scores,
			Opponent:      gs.Opponent,
			StartedAt:     gs.CreatedAt,
		})
	}
	return out
}
