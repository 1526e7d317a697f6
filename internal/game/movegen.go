// path: internal/game/movegen.go
package game

type moveDelta struct {
	dx int
	dy int
}

var (
	rookDirections = [...]moveDelta{
		{dx: 1, dy: 0},
		{dx: -1, dy: 0},
		{dx: 0, dy: 1},
		{dx: 0, dy: -1},
	}
	bishopDirections = [...]moveDelta{
		{dx: 1, dy: 1},
		{dx: 1, dy: -1},
		{dx: -1, dy: 1},
		{dx: -1, dy: -1},
	}
	knightOffsets = [...]moveDelta{
		{dx: 1, dy: 2},
		{dx: 2, dy: 1},
		{dx: 2, dy: -1},
		{dx: 1, dy: -2},
		{dx: -1, dy: -2},
		{dx: -2, dy: -1},
		{dx: -2, dy: 1},
		{dx: -1, dy: 2},
	}
	kingOffsets = [...]moveDelta{
		{dx: 1, dy: 0}, {dx: 1, dy: 1}, {dx: 0, dy: 1}, {dx: -1, dy: 1},
		{dx: -1, dy: 0}, {dx: -1, dy: -1}, {dx: 0, dy: -1}, {dx: 1, dy: -1},
	}
)

// forwardDir is the pawn advance direction: the player marches toward y=0,
// the enemy toward y=7.
func forwardDir(team Team) int {
	if team == TeamPlayer {
		return -1
	}
	return 1
}

// LegalMoves produces the exact set of squares pc may move to this turn.
// Pure with respect to board state; legality is geometry plus occupancy,
// there is no check filtering in this variant.
func (b *Board) LegalMoves(pc *Piece) Bitboard {
	if !b.Holds(pc) {
		return 0
	}

	switch pc.Kind {
	case Pawn:
		return b.pawnMoves(pc)
	case Knight:
		return b.offsetMoves(pc, knightOffsets[:])
	case Bishop:
		return b.slidingMoves(pc, bishopDirections[:])
	case Rook:
		return b.slidingMoves(pc, rookDirections[:])
	case Queen:
		return b.slidingMoves(pc, rookDirections[:]) | b.slidingMoves(pc, bishopDirections[:])
	case King, Boss:
		return b.offsetMoves(pc, kingOffsets[:])
	default:
		return 0
	}
}

func (b *Board) slidingMoves(pc *Piece, directions []moveDelta) Bitboard {
	var moves Bitboard
	startX := pc.Square.X()
	startY := pc.Square.Y()

	for _, delta := range directions {
		x := startX + delta.dx
		y := startY + delta.dy
		for {
			target, ok := SquareFromCoords(x, y)
			if !ok {
				break
			}
			occupant := b.pieceAt[target]
			if occupant == nil {
				moves = moves.Add(target)
				x += delta.dx
				y += delta.dy
				continue
			}
			if occupant.Team != pc.Team {
				moves = moves.Add(target)
			}
			break
		}
	}
	return moves
}

func (b *Board) offsetMoves(pc *Piece, offsets []moveDelta) Bitboard {
	var moves Bitboard
	x := pc.Square.X()
	y := pc.Square.Y()

	for _, delta := range offsets {
		if target, ok := SquareFromCoords(x+delta.dx, y+delta.dy); ok {
			occupant := b.pieceAt[target]
			if occupant == nil || occupant.Team != pc.Team {
				moves = moves.Add(target)
			}
		}
	}
	return moves
}

func (b *Board) pawnMoves(pc *Piece) Bitboard {
	var moves Bitboard
	x := pc.Square.X()
	y := pc.Square.Y()
	dir := forwardDir(pc.Team)

	// Forward squares must be empty; the double advance needs a clear
	// single step first and is gone after the pawn's first move.
	if target, ok := SquareFromCoords(x, y+dir); ok && b.pieceAt[target] == nil {
		moves = moves.Add(target)
		if !pc.FirstMoveTaken {
			if double, ok := SquareFromCoords(x, y+2*dir); ok && b.pieceAt[double] == nil {
				moves = moves.Add(double)
			}
		}
	}

	// Diagonals are capture-only. No en passant in this variant.
	for _, dx := range []int{-1, 1} {
		if target, ok := SquareFromCoords(x+dx, y+dir); ok {
			if victim := b.pieceAt[target]; victim != nil && victim.Team != pc.Team {
				moves = moves.Add(target)
			}
		}
	}

	return moves
}

// HasAnyMove reports whether a side has at least one legal move.
func (b *Board) HasAnyMove(team Team) bool {
	for _, pc := range b.pieceAt {
		if pc != nil && pc.Team == team && !b.LegalMoves(pc).Empty() {
			return true
		}
	}
	return false
}
