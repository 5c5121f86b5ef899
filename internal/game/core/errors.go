package core

import "errors"

// Sentinel errors for engine and collaborator misuse. Ordinary rule
// violations by agents are never errors; they surface as boolean "not
// permitted" results from the gateway.
var (
	ErrNegativeDamage    = errors.New("damage must be non-negative")
	ErrCastleOutOfBounds = errors.New("castle location out of bounds")
	ErrUnknownTerrain    = errors.New("unknown terrain name")
	ErrMalformedMap      = errors.New("malformed map description")
	ErrOccupiedTile      = errors.New("tile already occupied")
)
