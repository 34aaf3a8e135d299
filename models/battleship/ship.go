package battleship

import (
	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

type Orientation uint8

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

func (o Orientation) String() string {
	switch o {
	case OrientationVertical:
		return "vertical"
	case OrientationHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

type Ship struct {
	length        int
	bow           Coordinates
	orientation   Orientation
	remainingHits int
	placed        bool
}

func NewShip(length int, bow Coordinates, orientation Orientation) (*Ship, error) {
	if length <= 0 {
		return nil, cerr.ErrInvalidShipLength(length)
	}
	if orientation != OrientationVertical && orientation != OrientationHorizontal {
		return nil, cerr.ErrInvalidShipOrientation(uint8(orientation))
	}

	return &Ship{
		length:        length,
		bow:           bow,
		orientation:   orientation,
		remainingHits: length,
	}, nil
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Bow() Coordinates {
	return sh.bow
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) RemainingHits() int {
	return sh.remainingHits
}

// Cells returns the coordinates the ship occupies, starting at the bow.
// Vertical ships grow along rows and horizontal ones along columns.
func (sh *Ship) Cells() []Coordinates {
	cells := make([]Coordinates, sh.length)
	for i := 0; i < sh.length; i++ {
		if sh.orientation == OrientationVertical {
			cells[i] = sh.bow.Offset(i, 0)
		} else {
			cells[i] = sh.bow.Offset(0, i)
		}
	}
	return cells
}

// GotHit must only be called by the grid that owns the ship, once
// per occupied cell.
func (sh *Ship) GotHit() {
	if sh.remainingHits == 0 {
		panic("ship is already sunk; it cannot take another hit")
	}
	sh.remainingHits--
}

func (sh *Ship) IsSunk() bool {
	return sh.remainingHits == 0
}
