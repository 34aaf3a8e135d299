package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
	ConstErrPlaceFailed  = "ship placement failed"
)

// Sentinel errors. The constructor functions below wrap them with
// the offending values so callers can match with errors.Is.
var (
	ErrOutOfBounds          = errors.New("coordinates are out of game grid bound")
	ErrOverlap              = errors.New("ship overlaps another ship")
	ErrTooClose             = errors.New("ship is too close to another ship")
	ErrAlreadyShot          = errors.New("position is already shot")
	ErrInvalidShip          = errors.New("invalid ship")
	ErrShipAlreadyPlaced    = errors.New("ship is already placed on a grid")
	ErrShipNotInFleet       = errors.New("ship length is not pending in the fleet")
	ErrFleetIncomplete      = errors.New("fleet is not fully placed")
	ErrFleetPlacementFailed = errors.New("could not place fleet on grid")
	ErrInvalidRules         = errors.New("invalid game rules")
	ErrGameNotExists        = errors.New("game does not exist")
	ErrGameOver             = errors.New("game is already over")
	ErrSessionNotFound      = errors.New("session not found")
)

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrShipOverlap(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOverlap, row, col)
}

func ErrShipTooClose(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrTooClose, row, col)
}

func ErrPositionAlreadyShot(row, col int) error {
	return fmt.Errorf("%w in previous rounds\trow: %d\tcol: %d", ErrAlreadyShot, row, col)
}

func ErrInvalidShipLength(length int) error {
	return fmt.Errorf("%w: length must be positive, got: %d", ErrInvalidShip, length)
}

func ErrInvalidShipOrientation(orientation uint8) error {
	return fmt.Errorf("%w: unknown orientation: %d", ErrInvalidShip, orientation)
}

func ErrLengthNotPending(length int) error {
	return fmt.Errorf("%w\tlength: %d", ErrShipNotInFleet, length)
}

func ErrShipsPending(pending []int) error {
	return fmt.Errorf("%w\tpending: %v", ErrFleetIncomplete, pending)
}

func ErrCannotPlaceShip(length, attempts int) error {
	return fmt.Errorf("%w\tlength: %d\tattempts: %d", ErrFleetPlacementFailed, length, attempts)
}

func ErrRules(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRules, reason)
}

func ErrGameNotFound(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrSessionIdNotFound(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}
