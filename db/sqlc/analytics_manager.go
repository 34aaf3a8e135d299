package sqlc

import (
	"context"
	"errors"
	"net"

	"github.com/sqlc-dev/pqtype"
)

var ErrAnalyticsDisabled = errors.New("analytics is disabled on this server")

// AnalyticsManager keeps the counters of one server, keyed by its IP.
// A nil *AnalyticsManager is valid and does nothing, so the game
// server runs without a database.
type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	if a == nil {
		return pqtype.Inet{}
	}
	return a.serverIp
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	if a == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) IncrementPlayerWins(ctx context.Context) error {
	if a == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementPlayerWins(ctx, a.serverIp)
}

func (a *AnalyticsManager) IncrementComputerWins(ctx context.Context) error {
	if a == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsIncrementComputerWins(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetServerStats(ctx context.Context) (GameServerAnalytic, error) {
	if a == nil {
		return GameServerAnalytic{}, ErrAnalyticsDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.AnalyticsGetServerStats(ctx, a.serverIp)
}
