package api

import (
	"context"
	"errors"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

// wsShooter is the human side of a game played over a websocket
// session. It blocks on the connection until an attack arrives.
type wsShooter struct {
	sessionManager mc.SessionManager
	session        *mc.Session

	// first failed write; the session is unusable after it
	err error
}

var _ mb.Shooter = (*wsShooter)(nil)

func newWsShooter(sessionManager mc.SessionManager, session *mc.Session) *wsShooter {
	return &wsShooter{
		sessionManager: sessionManager,
		session:        session,
	}
}

func (ws *wsShooter) send(msg interface{}) error {
	if ws.err != nil {
		return ws.err
	}
	ws.err = ws.sessionManager.WriteToSessionConn(ws.session, msg, mc.MessageTypeJSON)
	return ws.err
}

func (ws *wsShooter) NextTarget(ctx context.Context, view mb.AttackView) (mb.Coordinates, error) {
	for {
		if ws.err != nil {
			return mb.Coordinates{}, ws.err
		}
		if err := ctx.Err(); err != nil {
			return mb.Coordinates{}, err
		}

		_, payload, err := ws.sessionManager.ReadFromSessionConn(ws.session)
		if err != nil {
			return mb.Coordinates{}, err
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			resp := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			resp.AddError(err.Error(), "")
			_ = ws.send(resp)
			continue
		}

		if code != mc.CodeAttack {
			resp := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			resp.AddError("", "only attack is accepted while the game is running")
			_ = ws.send(resp)
			continue
		}

		req, err := mc.DecodeMessage[mc.ReqAttack](payload)
		if err != nil {
			resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
			resp.AddError(err.Error(), errMsgInvalidPayload)
			_ = ws.send(resp)
			continue
		}
		return mb.NewCoordinates(req.Payload.Row, req.Payload.Col), nil
	}
}

// Report only answers rejected targets; committed shots are sent by
// the observer together with the board counters.
func (ws *wsShooter) Report(target mb.Coordinates, outcome mb.ShotOutcome, err error) {
	if err == nil {
		return
	}

	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	resp.AddPayload(mc.RespAttack{Row: target.Row, Col: target.Col, IsTurn: true})
	resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
	_ = ws.send(resp)
}

// observe pushes every committed shot of the game to the client.
func (ws *wsShooter) observe(game *mb.Game) func(mb.ShotEvent) {
	return func(e mb.ShotEvent) {
		code := mc.CodeOpponentAttack
		isTurn := e.Outcome == mb.ShotMiss
		if e.Attacker.IsHuman() {
			code = mc.CodeAttack
			isTurn = e.Outcome != mb.ShotMiss
		}

		payload := mc.RespAttack{
			Row:               e.Target.Row,
			Col:               e.Target.Col,
			Outcome:           e.Outcome.String(),
			IsTurn:            isTurn,
			LiveShipsPlayer:   game.Human().Grid().LiveShips(),
			LiveShipsComputer: game.Computer().Grid().LiveShips(),
		}
		if e.Outcome == mb.ShotSunk && e.Ship != nil {
			payload.SunkShipCells = e.Ship.Cells()
		}

		resp := mc.NewMessage[mc.RespAttack](code)
		resp.AddPayload(payload)
		_ = ws.send(resp)
	}
}

func isConnErr(err error) bool {
	_, ok := mc.ConnErrCode(err)
	return ok || errors.Is(err, context.Canceled)
}
