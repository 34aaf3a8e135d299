package battleship

import (
	"github.com/google/uuid"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Player struct {
	uuid        string
	name        string
	isHuman     bool
	matchStatus int
	shotsFired  int
	hits        int
	grid        *Grid
	shooter     Shooter
}

func NewPlayer(name string, isHuman bool, grid *Grid, shooter Shooter) *Player {
	return &Player{
		uuid:        uuid.NewString()[:10],
		name:        name,
		isHuman:     isHuman,
		matchStatus: PlayerMatchStatusUndefined,
		grid:        grid,
		shooter:     shooter,
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) IsHuman() bool {
	return p.isHuman
}

func (p *Player) Grid() *Grid {
	return p.grid
}

func (p *Player) Shooter() Shooter {
	return p.shooter
}

func (p *Player) SetShooter(shooter Shooter) {
	p.shooter = shooter
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) IsMatchOver() bool {
	return p.matchStatus != PlayerMatchStatusUndefined
}

func (p *Player) ShotsFired() int {
	return p.shotsFired
}

func (p *Player) Hits() int {
	return p.hits
}

func (p *Player) recordShot(outcome ShotOutcome) {
	p.shotsFired++
	if outcome != ShotMiss {
		p.hits++
	}
}

func (p *Player) setMatchStatus(status int) {
	p.matchStatus = status
}
