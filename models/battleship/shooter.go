package battleship

import (
	"context"
	"math/rand"
)

// Shooter picks the next target. A shooter only sees the defending
// grid through an AttackView, so hidden ships stay hidden.
type Shooter interface {
	NextTarget(ctx context.Context, view AttackView) (Coordinates, error)

	// Report tells the shooter how its last target resolved. err is
	// non-nil when the grid rejected the target; the shooter is then
	// asked again.
	Report(target Coordinates, outcome ShotOutcome, err error)
}

type AttackView interface {
	Size() int
	PositionState(c Coordinates) (PositionState, error)
}

type attackView struct {
	grid *Grid
}

var _ AttackView = attackView{}

// NewAttackView exposes the grid the way an attacker is allowed to see
// it: ships and their buffer read as empty water.
func NewAttackView(grid *Grid) AttackView {
	return attackView{grid: grid}
}

func (v attackView) Size() int {
	return v.grid.Size()
}

func (v attackView) PositionState(c Coordinates) (PositionState, error) {
	state, err := v.grid.PositionState(c)
	if err != nil {
		return state, err
	}

	switch state {
	case PositionStateOccupied, PositionStateAdjacencyMark:
		return PositionStateEmpty, nil
	default:
		return state, nil
	}
}

// IsUnshot reports whether a shot at c would be accepted.
func IsUnshot(view AttackView, c Coordinates) bool {
	state, err := view.PositionState(c)
	return err == nil && state == PositionStateEmpty
}

// RandomShooter picks uniformly among the positions it has not shot
// yet. It is not safe for concurrent use, same as the *rand.Rand.
type RandomShooter struct {
	rng *rand.Rand
}

var _ Shooter = (*RandomShooter)(nil)

func NewRandomShooter(rng *rand.Rand) *RandomShooter {
	return &RandomShooter{rng: rng}
}

func (rs *RandomShooter) NextTarget(ctx context.Context, view AttackView) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}

	size := view.Size()
	candidates := make([]Coordinates, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := NewCoordinates(row, col)
			if IsUnshot(view, c) {
				candidates = append(candidates, c)
			}
		}
	}

	// Nothing left to shoot; let the grid reject a random pick
	if len(candidates) == 0 {
		return NewCoordinates(rs.rng.Intn(size), rs.rng.Intn(size)), nil
	}
	return candidates[rs.rng.Intn(len(candidates))], nil
}

func (rs *RandomShooter) Report(Coordinates, ShotOutcome, error) {}
