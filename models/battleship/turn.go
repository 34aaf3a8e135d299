package battleship

import (
	"context"
	"errors"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

// ShotEvent describes a shot the defending grid accepted.
type ShotEvent struct {
	Attacker *Player
	Defender *Player
	Target   Coordinates
	Outcome  ShotOutcome

	// Ship that was hit, nil on a miss
	Ship *Ship
}

type CoordinatorOption func(*TurnCoordinator)

func WithShotObserver(observer func(ShotEvent)) CoordinatorOption {
	return func(tc *TurnCoordinator) {
		tc.observers = append(tc.observers, observer)
	}
}

// TurnCoordinator alternates two players. The active player keeps
// shooting while it hits and hands over on the first miss.
type TurnCoordinator struct {
	active    *Player
	waiting   *Player
	winner    *Player
	observers []func(ShotEvent)
}

func NewTurnCoordinator(first, second *Player, opts ...CoordinatorOption) *TurnCoordinator {
	tc := &TurnCoordinator{
		active:  first,
		waiting: second,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

func (tc *TurnCoordinator) Active() *Player {
	return tc.active
}

func (tc *TurnCoordinator) Waiting() *Player {
	return tc.waiting
}

// Winner is nil while the game is running.
func (tc *TurnCoordinator) Winner() *Player {
	return tc.winner
}

// PlayTurn lets the active player shoot until it misses or wins.
// It returns the winner once the defending grid is defeated and nil
// when the turn passed to the other player. Targets the grid rejects
// are reported back and the same shooter is asked again.
func (tc *TurnCoordinator) PlayTurn(ctx context.Context) (*Player, error) {
	if tc.winner != nil {
		return tc.winner, nil
	}

	attacker, defender := tc.active, tc.waiting
	view := NewAttackView(defender.Grid())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target, err := attacker.Shooter().NextTarget(ctx, view)
		if err != nil {
			return nil, err
		}

		outcome, err := defender.Grid().Attack(target)
		attacker.Shooter().Report(target, outcome, err)
		if err != nil {
			if errors.Is(err, cerr.ErrOutOfBounds) || errors.Is(err, cerr.ErrAlreadyShot) {
				continue
			}
			return nil, err
		}

		attacker.recordShot(outcome)
		tc.notify(ShotEvent{
			Attacker: attacker,
			Defender: defender,
			Target:   target,
			Outcome:  outcome,
			Ship:     defender.Grid().ShipAt(target),
		})

		switch outcome {
		case ShotSunk:
			if defender.Grid().IsDefeated() {
				tc.winner = attacker
				return attacker, nil
			}
		case ShotMiss:
			tc.active, tc.waiting = tc.waiting, tc.active
			return nil, nil
		}
	}
}

func (tc *TurnCoordinator) notify(event ShotEvent) {
	for _, observer := range tc.observers {
		observer(event)
	}
}
