package console

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

const (
	SymbolEmpty     = "O"
	SymbolShip      = "■"
	SymbolHit       = "x"
	SymbolMiss      = "T"
	SymbolAdjacency = "*"
)

// Board is anything with positions to draw. A *mb.Grid shows the whole
// board; an mb.AttackView shows what the opponent is allowed to see.
type Board interface {
	Size() int
	PositionState(c mb.Coordinates) (mb.PositionState, error)
}

func symbol(state mb.PositionState) string {
	switch state {
	case mb.PositionStateOccupied:
		return SymbolShip
	case mb.PositionStateHit:
		return SymbolHit
	case mb.PositionStateMiss, mb.PositionStateSunkMarker:
		return SymbolMiss
	case mb.PositionStateAdjacencyMark:
		return SymbolAdjacency
	default:
		return SymbolEmpty
	}
}

// Render writes the board with 1-based row and column labels.
func Render(w io.Writer, board Board) error {
	tw := tabwriter.NewWriter(w, 2, 0, 1, ' ', 0)

	fmt.Fprint(tw, "\t")
	for col := 0; col < board.Size(); col++ {
		fmt.Fprint(tw, strconv.Itoa(col+1)+"\t")
	}
	fmt.Fprint(tw, "\n")

	for row := 0; row < board.Size(); row++ {
		fmt.Fprint(tw, strconv.Itoa(row+1)+"\t")
		for col := 0; col < board.Size(); col++ {
			state, err := board.PositionState(mb.NewCoordinates(row, col))
			if err != nil {
				return err
			}
			fmt.Fprint(tw, symbol(state)+"\t")
		}
		fmt.Fprint(tw, "\n")
	}
	return tw.Flush()
}
