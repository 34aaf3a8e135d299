package api

import (
	cerr "github.com/saeidalz13/battleship-backend/internal/error"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

const (
	errMsgInvalidPayload = "invalid payload"
	errMsgNoGame         = "no game in this session, create one first"
	errMsgCreateFailed   = "game creation failed"
	errMsgNotReady       = "game cannot start yet"
)

// Request wraps one incoming message of a session. Each handler
// returns the message to write back; failures are carried in its
// Error field.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func (r Request) HandleCreateGame(gameManager mb.GameManager, defaultRules mb.Rules) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	req, err := mc.DecodeMessage[mc.ReqCreateGame](r.payload)
	if err != nil {
		resp.AddError(err.Error(), errMsgInvalidPayload)
		return nil, resp
	}

	rules := defaultRules
	if req.Payload.GridSize != nil {
		rules = defaultRules.WithGridSize(*req.Payload.GridSize)
	}

	return createGame(gameManager, rules, resp)
}

// HandleRematch starts over with the rules of the previous game.
func (r Request) HandleRematch(gameManager mb.GameManager, prevGame *mb.Game, defaultRules mb.Rules) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeRematch)

	rules := defaultRules
	if prevGame != nil {
		rules = prevGame.Rules()
	}
	return createGame(gameManager, rules, resp)
}

func createGame(gameManager mb.GameManager, rules mb.Rules, resp mc.Message[mc.RespCreateGame]) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	game, err := gameManager.CreateGame(rules)
	if err != nil {
		resp.AddError(err.Error(), errMsgCreateFailed)
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateGame{
		GameUuid:   game.Uuid(),
		PlayerUuid: game.Human().Uuid(),
		GridSize:   game.Rules().GridSize,
		Fleet:      game.Rules().Fleet,
	})
	return game, resp
}

func (r Request) HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	if game == nil {
		resp.AddError("", errMsgNoGame)
		return resp
	}

	req, err := mc.DecodeMessage[mc.ReqPlaceShip](r.payload)
	if err != nil {
		resp.AddError(err.Error(), errMsgInvalidPayload)
		return resp
	}

	bow := mb.NewCoordinates(req.Payload.Row, req.Payload.Col)
	ship, err := game.PlaceHumanShip(req.Payload.Length, bow, mb.Orientation(req.Payload.Orientation))
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlaceFailed)
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		Ship:         mc.NewRespShip(ship),
		PendingFleet: game.PendingFleet(),
	})
	return resp
}

func (r Request) HandlePlaceFleetRandom(game *mb.Game) mc.Message[mc.RespPlaceFleet] {
	resp := mc.NewMessage[mc.RespPlaceFleet](mc.CodePlaceFleetRandom)
	if game == nil {
		resp.AddError("", errMsgNoGame)
		return resp
	}

	ships, err := game.PlaceHumanFleetRandomly()
	respShips := make([]mc.RespShip, 0, len(ships))
	for _, ship := range ships {
		respShips = append(respShips, mc.NewRespShip(ship))
	}
	resp.AddPayload(mc.RespPlaceFleet{
		Ships:        respShips,
		PendingFleet: game.PendingFleet(),
	})

	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlaceFailed)
	}
	return resp
}

func (r Request) HandleReady(game *mb.Game) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeReady)

	switch {
	case game == nil:
		resp.AddError("", errMsgNoGame)
	case game.IsFinished():
		resp.AddError(cerr.ErrGameOver.Error(), errMsgNotReady)
	case !game.IsReadyToStart():
		resp.AddError(cerr.ErrShipsPending(game.PendingFleet()).Error(), errMsgNotReady)
	}
	return resp
}
