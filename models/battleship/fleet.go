package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

const (
	maxPlacementAttempts = 1000
	maxBoardAttempts     = 50
)

// PlaceFleetRandomly places one ship per length on the grid, sampling
// bow and orientation uniformly until the grid accepts the ship.
// Ships placed before a failure stay on the grid.
func PlaceFleetRandomly(grid *Grid, lengths []int, rng *rand.Rand) ([]*Ship, error) {
	ships := make([]*Ship, 0, len(lengths))

	for _, length := range lengths {
		ship, err := placeShipRandomly(grid, length, rng)
		if err != nil {
			return ships, err
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

// NewRandomGrid builds a grid holding the whole fleet. Random placement
// can paint itself into a corner, so the board is rebuilt from scratch
// a bounded number of times.
func NewRandomGrid(size int, lengths []int, rng *rand.Rand) (*Grid, error) {
	var lastErr error
	for i := 0; i < maxBoardAttempts; i++ {
		grid := NewGrid(size)
		if _, err := PlaceFleetRandomly(grid, lengths, rng); err != nil {
			lastErr = err
			continue
		}
		return grid, nil
	}
	return nil, lastErr
}

// copyLayout returns an unshot grid holding copies of the ships placed
// on grid.
func copyLayout(grid *Grid) (*Grid, error) {
	scratch := NewGrid(grid.Size())
	for _, s := range grid.Ships() {
		ship, err := NewShip(s.Length(), s.Bow(), s.Orientation())
		if err != nil {
			return nil, err
		}
		if err := scratch.AddShip(ship); err != nil {
			return nil, err
		}
	}
	return scratch, nil
}

func placeShipRandomly(grid *Grid, length int, rng *rand.Rand) (*Ship, error) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		bow := NewCoordinates(rng.Intn(grid.Size()), rng.Intn(grid.Size()))
		orientation := Orientation(rng.Intn(2))

		ship, err := NewShip(length, bow, orientation)
		if err != nil {
			return nil, err
		}
		if err := grid.AddShip(ship); err != nil {
			continue
		}
		return ship, nil
	}
	return nil, cerr.ErrCannotPlaceShip(length, maxPlacementAttempts)
}
