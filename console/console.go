package console

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/internal/logs"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

var separator = strings.Repeat("-", 20)

// Console plays human against computer games on a terminal until the
// player declines a rematch.
type Console struct {
	prompter *Prompter
	rules    mb.Rules
	rng      *rand.Rand
}

type Option func(*Console)

func WithRules(rules mb.Rules) Option {
	return func(c *Console) {
		c.rules = rules
	}
}

// WithRand fixes the randomness of ship placement and computer shots.
func WithRand(rng *rand.Rand) Option {
	return func(c *Console) {
		c.rng = rng
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		prompter: NewPrompter(in, out),
		rules:    mb.DefaultRules(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Run(ctx context.Context) error {
	c.greet()

	for {
		if err := c.playGame(ctx); err != nil {
			return err
		}

		again, err := c.prompter.AskYesNo(ctx, "Play again? (y/n): ")
		if err != nil {
			return err
		}
		if !again {
			c.prompter.Println("Thanks for playing!")
			return nil
		}
	}
}

func (c *Console) greet() {
	p := c.prompter
	p.Println("Welcome to Battleship!")
	p.Println("Place your ships and sink the enemy fleet.")
	p.Println("Board symbols:")
	p.Printf("- '%s': empty position\n", SymbolEmpty)
	p.Printf("- '%s': ship\n", SymbolShip)
	p.Printf("- '%s': hit ship\n", SymbolHit)
	p.Printf("- '%s': miss\n", SymbolMiss)
	p.Printf("- '%s': water next to your ships\n", SymbolAdjacency)
	p.Println("Rows and columns are counted from 1. You play against the computer!")
}

func (c *Console) playGame(ctx context.Context) error {
	game, err := mb.NewGame(c.rules, c.rng)
	if err != nil {
		return err
	}
	logs.Info("game created", zap.String("gameUuid", game.Uuid()), zap.Int("gridSize", c.rules.GridSize))

	if err := c.placeFleet(ctx, game); err != nil {
		return err
	}

	shooter := NewPromptShooter(c.prompter, game.Human().Grid())
	tc, err := game.Start(shooter, mb.WithShotObserver(c.announceComputerShot))
	if err != nil {
		return err
	}

	c.prompter.Println("Let's begin! You shoot first.")
	for {
		winner, err := tc.PlayTurn(ctx)
		if err != nil {
			return err
		}
		if winner == nil {
			continue
		}

		game.Finish(winner)
		logs.Info("game over", zap.String("gameUuid", game.Uuid()), zap.String("winner", winner.Name()))

		c.prompter.Println(separator)
		_ = Render(c.prompter.out, game.Human().Grid())
		if winner.IsHuman() {
			c.prompter.Printf("Congratulations! You won with %d shots.\n", winner.ShotsFired())
		} else {
			c.prompter.Println("Sorry, you lost. The computer won!")
		}
		return nil
	}
}

func (c *Console) announceComputerShot(e mb.ShotEvent) {
	if e.Attacker.IsHuman() {
		return
	}
	c.prompter.Printf("Computer shoots at %v: %s\n", e.Target, e.Outcome)
}

func (c *Console) placeFleet(ctx context.Context, game *mb.Game) error {
	p := c.prompter

	random, err := p.AskYesNo(ctx, fmt.Sprintf("Place your fleet %v randomly? (y/n): ", game.PendingFleet()))
	if err != nil {
		return err
	}
	if random {
		_, err := game.PlaceHumanFleetRandomly()
		if err == nil {
			p.Println("Your board:")
			return Render(p.out, game.Human().Grid())
		}
		// nothing was placed, fall back to placing by hand
		p.Println(err)
	}

	p.Println("Place your ships. Ships may not touch each other, not even diagonally.")
	for !game.IsReadyToStart() {
		length := game.PendingFleet()[0]
		p.Printf("Place a ship of length %d.\n", length)

		bow, err := p.AskCoordinates(ctx, "Bow position (row col): ")
		if err != nil {
			return err
		}

		orientation := mb.OrientationVertical
		if length > 1 {
			if orientation, err = p.AskOrientation(ctx); err != nil {
				return err
			}
		}

		if _, err := game.PlaceHumanShip(length, bow, orientation); err != nil {
			p.Println(err)
			continue
		}

		p.Println("Your board:")
		if err := Render(p.out, game.Human().Grid()); err != nil {
			return err
		}
	}
	return nil
}
