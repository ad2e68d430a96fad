package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/iamasit07/connect4-cpu/backend/internal/repository/memory"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/game"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "play Connect 4 against the computer in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "opponent",
				Value: bot.DefaultStrategy,
				Usage: "opponent strategy",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for the opponent's choices (0 picks one at random)",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "let the computer play both sides",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 1,
				Usage: "rounds to play with --auto",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			bots := bot.NewRegistry(cmd.Int64("seed"))
			svc := game.NewService(memory.NewSessionStore(), bots)

			p := &player{
				svc:      svc,
				bots:     bots,
				in:       cmd.Reader,
				out:      cmd.Writer,
				opponent: cmd.String("opponent"),
			}
			if cmd.Bool("auto") {
				return p.auto(ctx, cmd.Int("rounds"))
			}
			return p.interactive(ctx)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
