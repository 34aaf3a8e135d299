package console

import (
	"context"
	"errors"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

// PromptShooter is the human at the terminal. Before every shot it
// draws the player's own board and what is known of the opponent's.
type PromptShooter struct {
	prompter *Prompter
	own      *mb.Grid
}

var _ mb.Shooter = (*PromptShooter)(nil)

func NewPromptShooter(prompter *Prompter, own *mb.Grid) *PromptShooter {
	return &PromptShooter{prompter: prompter, own: own}
}

func (ps *PromptShooter) NextTarget(ctx context.Context, view mb.AttackView) (mb.Coordinates, error) {
	ps.showBoards(view)
	return ps.prompter.AskCoordinates(ctx, "Your shot (row col): ")
}

func (ps *PromptShooter) Report(target mb.Coordinates, outcome mb.ShotOutcome, err error) {
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		ps.prompter.Printf("%v is off the board. Rows and columns go from 1 to %d.\n", target, ps.own.Size())
	case errors.Is(err, cerr.ErrAlreadyShot):
		ps.prompter.Printf("You already shot at %v.\n", target)
	case err != nil:
		ps.prompter.Println(err)
	case outcome == mb.ShotSunk:
		ps.prompter.Println("Sunk! You get another shot.")
	case outcome == mb.ShotHit:
		ps.prompter.Println("Hit! You get another shot.")
	default:
		ps.prompter.Println("Miss!")
	}
}

func (ps *PromptShooter) showBoards(view mb.AttackView) {
	ps.prompter.Println(separator)
	ps.prompter.Println("Your board:")
	_ = Render(ps.prompter.out, ps.own)
	ps.prompter.Println(separator)
	ps.prompter.Println("Computer board:")
	_ = Render(ps.prompter.out, view)
	ps.prompter.Println(separator)
}
