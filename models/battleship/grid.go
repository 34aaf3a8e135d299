package battleship

import (
	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

type PositionState uint8

const (
	PositionStateEmpty PositionState = iota
	PositionStateOccupied
	PositionStateMiss
	PositionStateHit

	// Buffer cells around a sunk ship. Shooting them is the same as
	// shooting a cell that already missed.
	PositionStateSunkMarker

	// Buffer cells around a placed ship. For shots they behave exactly
	// like empty cells; only rendering tells them apart.
	PositionStateAdjacencyMark
)

type ShotOutcome uint8

const (
	ShotMiss ShotOutcome = iota
	ShotHit
	ShotSunk
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// Grid is the board of one player. It owns the state of every
// position and the ships placed on it.
type Grid struct {
	size      int
	cells     [][]PositionState
	ships     []*Ship
	owners    map[Coordinates]*Ship
	liveShips int
}

// Creates a new grid where all positions are empty
func NewGrid(size int) *Grid {
	cells := make([][]PositionState, size)
	for i := 0; i < size; i++ {
		cells[i] = make([]PositionState, size)
	}

	return &Grid{
		size:   size,
		cells:  cells,
		ships:  make([]*Ship, 0),
		owners: make(map[Coordinates]*Ship),
	}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) LiveShips() int {
	return g.liveShips
}

// Ships returns the placed ships in placement order, sunk ones included.
func (g *Grid) Ships() []*Ship {
	ships := make([]*Ship, len(g.ships))
	copy(ships, g.ships)
	return ships
}

// ShipAt returns the ship occupying c, or nil.
func (g *Grid) ShipAt(c Coordinates) *Ship {
	return g.owners[c]
}

func (g *Grid) IsDefeated() bool {
	return g.liveShips == 0
}

func (g *Grid) PositionState(c Coordinates) (PositionState, error) {
	if g.isOutOfBound(c) {
		return PositionStateEmpty, cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}
	return g.cells[c.Row][c.Col], nil
}

// AddShip validates the ship against the current board and places it.
// Bounds, overlap and the adjacency buffer are all checked before any
// position is written, so a rejected ship leaves the grid untouched.
func (g *Grid) AddShip(ship *Ship) error {
	if ship.placed {
		return cerr.ErrShipAlreadyPlaced
	}

	cells := ship.Cells()
	for _, c := range cells {
		if g.isOutOfBound(c) {
			return cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
		}
	}

	for _, c := range cells {
		if g.cells[c.Row][c.Col] == PositionStateOccupied {
			return cerr.ErrShipOverlap(c.Row, c.Col)
		}
	}

	for _, c := range cells {
		for _, n := range c.Neighbours() {
			if g.isOutOfBound(n) {
				continue
			}
			if g.cells[n.Row][n.Col] == PositionStateOccupied {
				return cerr.ErrShipTooClose(c.Row, c.Col)
			}
		}
	}

	for _, c := range cells {
		g.cells[c.Row][c.Col] = PositionStateOccupied
		g.owners[c] = ship
	}
	ship.placed = true
	g.ships = append(g.ships, ship)
	g.liveShips++

	g.markContour(ship, PositionStateAdjacencyMark)
	return nil
}

// Attack applies a shot to the grid. A committed shot always returns
// one of the three outcomes; a rejected one returns an error and
// changes nothing.
func (g *Grid) Attack(c Coordinates) (ShotOutcome, error) {
	if g.isOutOfBound(c) {
		return ShotMiss, cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}

	switch g.cells[c.Row][c.Col] {
	case PositionStateHit, PositionStateMiss, PositionStateSunkMarker:
		return ShotMiss, cerr.ErrPositionAlreadyShot(c.Row, c.Col)

	case PositionStateOccupied:
		g.cells[c.Row][c.Col] = PositionStateHit

		ship := g.owners[c]
		ship.GotHit()
		if !ship.IsSunk() {
			return ShotHit, nil
		}

		g.liveShips--
		g.markContour(ship, PositionStateSunkMarker)
		return ShotSunk, nil

	default:
		g.cells[c.Row][c.Col] = PositionStateMiss
		return ShotMiss, nil
	}
}

// Marks the in-bound neighbours of the ship that are still unshot.
func (g *Grid) markContour(ship *Ship, state PositionState) {
	for _, c := range ship.Cells() {
		for _, n := range c.Neighbours() {
			if g.isOutOfBound(n) {
				continue
			}
			switch g.cells[n.Row][n.Col] {
			case PositionStateEmpty, PositionStateAdjacencyMark:
				g.cells[n.Row][n.Col] = state
			}
		}
	}
}

func (g *Grid) isOutOfBound(c Coordinates) bool {
	return c.Row < 0 || c.Col < 0 || c.Row >= g.size || c.Col >= g.size
}
