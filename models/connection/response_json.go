package connection

import (
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	GridSize   int    `json:"grid_size"`
	Fleet      []int  `json:"fleet"`
}

type RespShip struct {
	Length      int   `json:"length"`
	Row         int   `json:"row"`
	Col         int   `json:"col"`
	Orientation uint8 `json:"orientation"`
}

func NewRespShip(ship *mb.Ship) RespShip {
	return RespShip{
		Length:      ship.Length(),
		Row:         ship.Bow().Row,
		Col:         ship.Bow().Col,
		Orientation: uint8(ship.Orientation()),
	}
}

type RespPlaceShip struct {
	Ship         RespShip `json:"ship"`
	PendingFleet []int    `json:"pending_fleet"`
}

type RespPlaceFleet struct {
	Ships        []RespShip `json:"ships"`
	PendingFleet []int      `json:"pending_fleet"`
}

// RespAttack describes one committed shot. It is sent with CodeAttack
// for the player's shots and with CodeOpponentAttack for the computer's.
type RespAttack struct {
	Row               int              `json:"row"`
	Col               int              `json:"col"`
	Outcome           string           `json:"outcome"`
	IsTurn            bool             `json:"is_turn"`
	SunkShipCells     []mb.Coordinates `json:"sunk_ship_cells,omitempty"`
	LiveShipsPlayer   int              `json:"live_ships_player"`
	LiveShipsComputer int              `json:"live_ships_computer"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
	ShotsFired        int `json:"shots_fired"`
	Hits              int `json:"hits"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
