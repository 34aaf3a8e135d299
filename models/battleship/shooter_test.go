package battleship

import (
	"context"
	"math/rand"
	"testing"
)

func TestAttackViewHidesShips(t *testing.T) {
	grid := NewGrid(DefaultGridSize)
	if err := grid.AddShip(mustShip(t, 2, 3, 3, OrientationHorizontal)); err != nil {
		t.Fatal(err)
	}
	view := NewAttackView(grid)

	for _, c := range []Coordinates{{3, 3}, {3, 4}, {2, 2}, {4, 5}} {
		state, err := view.PositionState(c)
		if err != nil {
			t.Fatal(err)
		}
		if state != PositionStateEmpty {
			t.Fatalf("expected %v to look empty\tgot: %d", c, state)
		}
	}

	if _, err := grid.Attack(NewCoordinates(3, 3)); err != nil {
		t.Fatal(err)
	}
	if state, _ := view.PositionState(NewCoordinates(3, 3)); state != PositionStateHit {
		t.Fatalf("expected hit to be visible\tgot: %d", state)
	}
	if _, err := view.PositionState(NewCoordinates(10, 0)); err == nil {
		t.Fatal("out of bound position must fail")
	}
}

func TestRandomShooterSkipsResolvedPositions(t *testing.T) {
	grid := NewGrid(3)
	shooter := NewRandomShooter(rand.New(rand.NewSource(1)))
	view := NewAttackView(grid)

	// every position but (2, 1) already shot
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 2 && col == 1 {
				continue
			}
			if _, err := grid.Attack(NewCoordinates(row, col)); err != nil {
				t.Fatal(err)
			}
		}
	}

	for i := 0; i < 20; i++ {
		target, err := shooter.NextTarget(context.Background(), view)
		if err != nil {
			t.Fatal(err)
		}
		if target != NewCoordinates(2, 1) {
			t.Fatalf("expected the only unshot position\tgot: %v", target)
		}
	}
}

func TestRandomShooterStaysInBound(t *testing.T) {
	grid := NewGrid(DefaultGridSize)
	shooter := NewRandomShooter(rand.New(rand.NewSource(42)))
	view := NewAttackView(grid)

	for i := 0; i < DefaultGridSize*DefaultGridSize; i++ {
		target, err := shooter.NextTarget(context.Background(), view)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := grid.Attack(target); err != nil {
			t.Fatalf("shot %d at %v rejected: %v", i, target, err)
		}
	}
}
