package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/db/sqlc"
	"github.com/saeidalz13/battleship-backend/internal/logs"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// RequestProcessor serves the websocket endpoint. Every new connection
// gets a session that owns at most one game at a time.
type RequestProcessor struct {
	ctx            context.Context
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	rules          mb.Rules
}

func NewRequestProcessor(
	ctx context.Context,
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
	rules mb.Rules,
) RequestProcessor {
	return RequestProcessor{
		ctx:            ctx,
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		rules:          rules,
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Upgrade writes the http error response itself
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logs.Warn("could not open websocket connection", zap.Error(err))
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		logs.Info("a new connection established", zap.String("remoteAddr", conn.RemoteAddr().String()))
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// This either means an expired session or invalid session ID
			logs.Info("reconnect rejected", zap.String("sessionId", sessionIdQuery), zap.Error(err))
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			_ = conn.Close()
		}
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var sessionGame *mb.Game
	sessionId := session.Id()

	// Unblocks the read when the server shuts down
	stop := context.AfterFunc(rp.ctx, session.Close)

	defer func() {
		stop()
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		rp.sessionManager.TerminateSession(session)
		logs.Info("session terminated", zap.String("sessionId", sessionId))
	}()

	write := func(msg interface{}) error {
		return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
	}

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := write(resp); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries are done at this point, the connection is gone
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "")
			if err := write(msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeCreateGame, mc.CodeRematch:
			var (
				game    *mb.Game
				respMsg mc.Message[mc.RespCreateGame]
			)
			if code == mc.CodeCreateGame {
				game, respMsg = NewRequest(payload).HandleCreateGame(rp.gameManager, rp.rules)
			} else {
				game, respMsg = NewRequest(payload).HandleRematch(rp.gameManager, sessionGame, rp.rules)
			}

			if respMsg.Error == nil {
				if sessionGame != nil {
					rp.gameManager.TerminateGame(sessionGame.Uuid())
				}
				sessionGame = game
				logs.Info("game created", zap.String("sessionId", sessionId), zap.String("gameUuid", game.Uuid()))

				if err := rp.analytics.IncrementGamesCreatedCount(rp.ctx); err != nil {
					// not killing the game for it
					logs.Warn("failed to count created game", zap.Error(err))
				}
			}

			if err := write(respMsg); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			if err := write(NewRequest(payload).HandlePlaceShip(sessionGame)); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceFleetRandom:
			if err := write(NewRequest(payload).HandlePlaceFleetRandom(sessionGame)); err != nil {
				break sessionLoop
			}

		// The player has placed the fleet; the game runs until someone
		// wins and the session goes back to waiting for a new game.
		case mc.CodeReady:
			respMsg := NewRequest(payload).HandleReady(sessionGame)
			if err := write(respMsg); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if err := rp.playGame(session, sessionGame); err != nil {
				if isConnErr(err) {
					logs.Info("game aborted", zap.String("sessionId", sessionId), zap.Error(err))
				} else {
					logs.Error("game failed", zap.String("sessionId", sessionId), zap.Error(err))
				}
				break sessionLoop
			}

		case mc.CodeAttack:
			respMsg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respMsg.AddError("", "game has not started")
			if err := write(respMsg); err != nil {
				break sessionLoop
			}

		default:
			respMsg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respMsg.AddError("", "invalid code in the incoming payload")
			if err := write(respMsg); err != nil {
				break sessionLoop
			}
		}
	}
}

// playGame runs the turns of a ready game on the session goroutine.
// It returns nil once the game is over and the result was sent.
func (rp RequestProcessor) playGame(session *mc.Session, game *mb.Game) error {
	shooter := newWsShooter(rp.sessionManager, session)

	tc, err := game.Start(shooter, mb.WithShotObserver(shooter.observe(game)))
	if err != nil {
		return err
	}
	if err := shooter.send(mc.NewMessage[mc.NoPayload](mc.CodeStartGame)); err != nil {
		return err
	}

	for {
		winner, err := tc.PlayTurn(rp.ctx)
		if err != nil {
			return err
		}
		if shooter.err != nil {
			return shooter.err
		}
		if winner == nil {
			continue
		}

		game.Finish(winner)
		rp.recordResult(winner)
		logs.Info("game over",
			zap.String("gameUuid", game.Uuid()),
			zap.String("winner", winner.Name()),
			zap.Int("shotsFired", winner.ShotsFired()),
		)

		human := game.Human()
		resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
		resp.AddPayload(mc.RespEndGame{
			PlayerMatchStatus: human.MatchStatus(),
			ShotsFired:        human.ShotsFired(),
			Hits:              human.Hits(),
		})
		return shooter.send(resp)
	}
}

func (rp RequestProcessor) recordResult(winner *mb.Player) {
	var err error
	if winner.IsHuman() {
		err = rp.analytics.IncrementPlayerWins(rp.ctx)
	} else {
		err = rp.analytics.IncrementComputerWins(rp.ctx)
	}
	if err != nil {
		logs.Warn("failed to record game result", zap.Error(err))
	}
}
