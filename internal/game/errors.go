// path: internal/game/errors.go
package game

import "errors"

var (
	ErrOffBoard     = errors.New("coordinate off board")
	ErrNoPiece      = errors.New("no piece at square")
	ErrWrongTeam    = errors.New("piece belongs to the other side")
	ErrNotYourTurn  = errors.New("not this side's turn")
	ErrIllegalMove  = errors.New("destination not in the legal move set")
	ErrMatchOver    = errors.New("match already finished")
	ErrSquareTaken  = errors.New("square already occupied")
	ErrPieceRemoved = errors.New("piece no longer on the board")
)
