// path: internal/game/board.go
// Package game implements the Shadows-mode battle engine: the 8x8 board,
// per-kind move generation, HP combat, and the turn state machine.
package game

import (
	"fmt"

	"go.uber.org/zap"
)

// Board owns the grid-to-piece mapping and the live piece collection. It is
// the sole authority on occupancy and the sole mutator of piece positions;
// everything else reads through its query methods.
type Board struct {
	pieceAt   [64]*Piece
	occupancy [2]Bitboard
	nextID    int
	log       *zap.Logger
}

// NewBoard returns an empty board. A nil logger is replaced with a no-op one.
func NewBoard(log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{nextID: 1, log: log}
}

// Place creates a new piece of the given kind at (x, y) with the kind's
// starting stats. Summoned reinforcements enter the board through here too.
func (b *Board) Place(team Team, kind Kind, x, y int) (*Piece, error) {
	sq, ok := SquareFromCoords(x, y)
	if !ok {
		return nil, fmt.Errorf("place %s at (%d,%d): %w", kind, x, y, ErrOffBoard)
	}
	if b.pieceAt[sq] != nil {
		return nil, fmt.Errorf("place %s at %s: %w", kind, sq, ErrSquareTaken)
	}
	stats := StatsFor(kind)
	pc := &Piece{
		ID:     b.nextID,
		Team:   team,
		Kind:   kind,
		Square: sq,
		HP:     stats.HP,
		HPMax:  stats.HP,
		Damage: stats.Damage,
	}
	b.nextID++
	b.pieceAt[sq] = pc
	b.occupancy[team.Index()] = b.occupancy[team.Index()].Add(sq)
	return pc, nil
}

func (b *Board) removePiece(pc *Piece) {
	if b.pieceAt[pc.Square] == pc {
		b.pieceAt[pc.Square] = nil
		b.occupancy[pc.Team.Index()] = b.occupancy[pc.Team.Index()].Remove(pc.Square)
	}
}

// PieceAt returns the piece occupying (x, y), or nil for empty or off-board.
func (b *Board) PieceAt(x, y int) *Piece {
	sq, ok := SquareFromCoords(x, y)
	if !ok {
		return nil
	}
	return b.pieceAt[sq]
}

// Holds reports whether pc is still a live member of this board.
func (b *Board) Holds(pc *Piece) bool {
	return pc != nil && b.pieceAt[pc.Square] == pc
}

// LivePieces returns every piece currently on the board.
func (b *Board) LivePieces() []*Piece {
	out := make([]*Piece, 0, 32)
	for _, pc := range b.pieceAt {
		if pc != nil {
			out = append(out, pc)
		}
	}
	return out
}

// TeamPieces returns the live pieces of one side.
func (b *Board) TeamPieces(team Team) []*Piece {
	out := make([]*Piece, 0, 16)
	for _, pc := range b.pieceAt {
		if pc != nil && pc.Team == team {
			out = append(out, pc)
		}
	}
	return out
}

func (b *Board) occupied() Bitboard {
	return b.occupancy[0] | b.occupancy[1]
}

// BossDefeated reports whether the enemy's Fallen King has been removed.
func (b *Board) BossDefeated() bool {
	for _, pc := range b.pieceAt {
		if pc != nil && pc.IsBoss() {
			return false
		}
	}
	return true
}

// PlayerKingDefeated reports whether the player's King has been removed.
func (b *Board) PlayerKingDefeated() bool {
	for _, pc := range b.pieceAt {
		if pc != nil && pc.Team == TeamPlayer && pc.Kind == King {
			return false
		}
	}
	return true
}

// MoveOutcome describes what one applied move did to the board.
type MoveOutcome struct {
	From        Square
	To          Square
	Relocated   bool
	Target      *Piece
	DamageDealt int
	TargetDied  bool
}

// MovePiece applies one validated move atomically: if the destination holds
// an enemy, combat resolves first; the attacker advances only if the square
// ended up empty. The per-square uniqueness invariant means a surviving
// defender keeps its square and the attacker holds position, its turn spent.
// The piece's post-move hook runs either way.
func (b *Board) MovePiece(pc *Piece, to Square) (MoveOutcome, error) {
	if !b.Holds(pc) {
		return MoveOutcome{}, ErrPieceRemoved
	}
	out := MoveOutcome{From: pc.Square, To: to}

	if target := b.pieceAt[to]; target != nil {
		if target.Team == pc.Team {
			return MoveOutcome{}, fmt.Errorf("move %s to %s: %w", pc.Name(), to, ErrSquareTaken)
		}
		out.Target = target
		out.DamageDealt = pc.Damage
		out.TargetDied = b.ApplyDamage(target, pc.Damage)
	}

	if b.pieceAt[to] == nil {
		b.pieceAt[pc.Square] = nil
		b.occupancy[pc.Team.Index()] = b.occupancy[pc.Team.Index()].Remove(pc.Square)
		pc.Square = to
		b.pieceAt[to] = pc
		b.occupancy[pc.Team.Index()] = b.occupancy[pc.Team.Index()].Add(to)
		out.Relocated = true
	}

	pc.postMove()
	return out, nil
}

// postMove is the per-kind hook run after a move is applied. Only pawns use
// it today, to retire the double advance.
func (p *Piece) postMove() {
	if p.Kind == Pawn {
		p.FirstMoveTaken = true
	}
}
