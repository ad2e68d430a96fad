package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/game"
)

var symbols = map[domain.PlayerID]string{
	domain.Empty:   ".",
	domain.Player1: "X",
	domain.Player2: "O",
}

type player struct {
	svc      *game.Service
	bots     *bot.Registry
	in       io.Reader
	out      io.Writer
	opponent string
}

func (p *player) writer() io.Writer {
	if p.out == nil {
		return os.Stdout
	}
	return p.out
}

func (p *player) reader() io.Reader {
	if p.in == nil {
		return os.Stdin
	}
	return p.in
}

func render(w io.Writer, gs domain.GameSession) {
	for col := 1; col <= domain.Columns; col++ {
		fmt.Fprintf(w, " %d", col)
	}
	fmt.Fprintln(w)
	for _, row := range gs.Board {
		for _, cell := range row {
			fmt.Fprintf(w, " %s", symbols[cell])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Score  X %d : %d O  (round %d)\n", gs.Scores.Player1, gs.Scores.Player2, gs.Round)
}

func outcome(gs domain.GameSession) string {
	switch gs.Status {
	case domain.StatusWon:
		return fmt.Sprintf("%s wins!", symbols[gs.Winner])
	case domain.StatusDraw:
		return "It's a draw."
	}
	return ""
}

// interactive reads one command per line: a column 1-7, "r" to reset or "q" to quit.
func (p *player) interactive(ctx context.Context) error {
	out := p.writer()
	gs, err := p.svc.CreateSession(ctx, game.CreateOptions{Opponent: p.opponent})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(p.reader())
	render(out, gs)
	fmt.Fprint(out, "Your move (1-7, r to reset, q to quit): ")

	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch line {
		case "":
			fmt.Fprint(out, "> ")
			continue
		case "q", "quit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "r", "reset":
			gs, err = p.svc.Reset(ctx, gs.ID)
			if err != nil {
				return err
			}
			render(out, gs)
			fmt.Fprint(out, "> ")
			continue
		}

		column, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "Not a column: %q\n> ", line)
			continue
		}

		next, err := p.turn(ctx, gs.ID, column-1)
		if err != nil {
			if domain.KindOf(err) == domain.KindInternal {
				return err
			}
			fmt.Fprintf(out, "%v\n> ", err)
			continue
		}
		gs = next

		render(out, gs)
		if msg := outcome(gs); msg != "" {
			fmt.Fprintf(out, "%s Type r to play again or q to quit.\n", msg)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// turn plays the human move and, if the round is still on, the opponent's reply.
func (p *player) turn(ctx context.Context, gameID string, column int) (domain.GameSession, error) {
	gs, err := p.svc.ApplyMove(ctx, gameID, column, domain.HumanPlayer)
	if err != nil || gs.IsFinished() {
		return gs, err
	}
	return p.svc.ApplyOpponentMove(ctx, gameID)
}

// auto lets the opponent strategy choose for the human side too.
func (p *player) auto(ctx context.Context, rounds int) error {
	out := p.writer()
	human, err := p.bots.Lookup(p.opponent)
	if err != nil {
		return err
	}

	gs, err := p.svc.CreateSession(ctx, game.CreateOptions{Opponent: p.opponent})
	if err != nil {
		return err
	}

	for round := 0; round < rounds; round++ {
		if round > 0 {
			if gs, err = p.svc.Reset(ctx, gs.ID); err != nil {
				return err
			}
		}

		for !gs.IsFinished() {
			column, ok := bot.SelectMove(&gs, human)
			if !ok {
				return domain.ErrNoValidMove
			}
			if gs, err = p.turn(ctx, gs.ID, column); err != nil {
				return err
			}
		}

		render(out, gs)
		fmt.Fprintln(out, outcome(gs))
	}
	return nil
}
