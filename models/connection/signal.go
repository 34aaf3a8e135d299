package connection

import (
	"encoding/json"
	"errors"
)

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodePlaceShip
	CodePlaceFleetRandom
	CodeReady
	CodeStartGame
	CodeAttack

	// Shots of the computer, pushed after every computer attack
	CodeOpponentAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// Start a new game with the rules of the previous one
	CodeRematch
)

var ErrSignalAbsent = errors.New("incoming req payload must contain 'code' field")

type Signal struct {
	Code *uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: &code}
}

// FetchCodeFromMsg extracts the code of an incoming message. Malformed
// JSON and a missing code are both reported as ErrSignalAbsent.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	if err := json.Unmarshal(payload, &signal); err != nil {
		return 0, ErrSignalAbsent
	}
	if signal.Code == nil {
		return 0, ErrSignalAbsent
	}
	return *signal.Code, nil
}
