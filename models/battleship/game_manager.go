package battleship

import (
	"math/rand"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

type GameManager interface {
	CreateGame(rules Rules) (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	seeds *rand.Rand
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

// WithSeed makes every game created by the manager reproducible.
func WithSeed(seed int64) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.seeds = rand.New(rand.NewSource(seed))
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		seeds: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

// Every game gets its own *rand.Rand since games run on different
// goroutines. The computer fleet is placed outside the lock.
func (bgm *BattleshipGameManager) CreateGame(rules Rules) (*Game, error) {
	bgm.mu.Lock()
	seed := bgm.seeds.Int63()
	bgm.mu.Unlock()

	game, err := NewGame(rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()
	return game, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()

	game, prs := bgm.games[gameUuid]
	if !prs {
		return nil, cerr.ErrGameNotFound(gameUuid)
	}
	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
