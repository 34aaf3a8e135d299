package battleship

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

const (
	HumanPlayerName    = "player"
	ComputerPlayerName = "computer"
)

// Game is one play-through of a human against the computer. A rematch
// is a new Game; nothing carries over.
type Game struct {
	uuid        string
	isFinished  bool
	createdAt   time.Time
	rules       Rules
	pending     []int
	rng         *rand.Rand
	human       *Player
	computer    *Player
	coordinator *TurnCoordinator
}

// NewGame places the computer fleet at random and leaves the human
// grid empty.
func NewGame(rules Rules, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	computerGrid, err := NewRandomGrid(rules.GridSize, rules.Fleet, rng)
	if err != nil {
		return nil, err
	}

	pending := make([]int, len(rules.Fleet))
	copy(pending, rules.Fleet)

	return &Game{
		uuid:      uuid.NewString()[:6],
		createdAt: time.Now(),
		rules:     rules,
		pending:   pending,
		rng:       rng,
		human:     NewPlayer(HumanPlayerName, true, NewGrid(rules.GridSize), nil),
		computer:  NewPlayer(ComputerPlayerName, false, computerGrid, NewRandomShooter(rng)),
	}, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) Human() *Player {
	return g.human
}

func (g *Game) Computer() *Player {
	return g.computer
}

func (g *Game) IsFinished() bool {
	return g.isFinished
}

// PendingFleet returns the ship lengths the human still has to place.
func (g *Game) PendingFleet() []int {
	pending := make([]int, len(g.pending))
	copy(pending, g.pending)
	return pending
}

func (g *Game) IsReadyToStart() bool {
	return len(g.pending) == 0
}

func (g *Game) PlaceHumanShip(length int, bow Coordinates, orientation Orientation) (*Ship, error) {
	idx := g.pendingIndex(length)
	if idx < 0 {
		return nil, cerr.ErrLengthNotPending(length)
	}

	ship, err := NewShip(length, bow, orientation)
	if err != nil {
		return nil, err
	}
	if err := g.human.Grid().AddShip(ship); err != nil {
		return nil, err
	}

	g.pending = append(g.pending[:idx], g.pending[idx+1:]...)
	return ship, nil
}

// PlaceHumanFleetRandomly places every pending ship at random. The
// layout is searched on a copy of the human grid, rebuilt from scratch a
// bounded number of times, and only committed once every ship fits. A
// failure leaves the grid and the pending fleet as they were.
func (g *Game) PlaceHumanFleetRandomly() ([]*Ship, error) {
	grid := g.human.Grid()

	var (
		layout  []*Ship
		lastErr error
	)
	for i := 0; i < maxBoardAttempts && layout == nil; i++ {
		scratch, err := copyLayout(grid)
		if err != nil {
			return nil, err
		}
		ships, err := PlaceFleetRandomly(scratch, g.pending, g.rng)
		if err != nil {
			lastErr = err
			continue
		}
		layout = ships
	}
	if layout == nil {
		return nil, lastErr
	}

	placed := make([]*Ship, 0, len(layout))
	for _, s := range layout {
		ship, err := NewShip(s.Length(), s.Bow(), s.Orientation())
		if err != nil {
			return placed, err
		}
		if err := grid.AddShip(ship); err != nil {
			return placed, err
		}
		if idx := g.pendingIndex(ship.Length()); idx >= 0 {
			g.pending = append(g.pending[:idx], g.pending[idx+1:]...)
		}
		placed = append(placed, ship)
	}
	return placed, nil
}

// Start wires the human shooter in and returns the coordinator for the
// game. The human shoots first.
func (g *Game) Start(humanShooter Shooter, opts ...CoordinatorOption) (*TurnCoordinator, error) {
	if g.isFinished {
		return nil, cerr.ErrGameOver
	}
	if !g.IsReadyToStart() {
		return nil, cerr.ErrShipsPending(g.PendingFleet())
	}

	g.human.SetShooter(humanShooter)
	g.coordinator = NewTurnCoordinator(g.human, g.computer, opts...)
	return g.coordinator, nil
}

func (g *Game) Coordinator() *TurnCoordinator {
	return g.coordinator
}

// Finish records the match status of both players.
func (g *Game) Finish(winner *Player) {
	g.isFinished = true
	for _, p := range []*Player{g.human, g.computer} {
		if p == winner {
			p.setMatchStatus(PlayerMatchStatusWon)
		} else {
			p.setMatchStatus(PlayerMatchStatusLost)
		}
	}
}

func (g *Game) pendingIndex(length int) int {
	for i, l := range g.pending {
		if l == length {
			return i
		}
	}
	return -1
}
