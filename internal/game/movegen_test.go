// path: internal/game/movegen_test.go
package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustPlace(t *testing.T, b *Board, team Team, kind Kind, x, y int) *Piece {
	t.Helper()
	pc, err := b.Place(team, kind, x, y)
	if err != nil {
		t.Fatalf("place %s at (%d,%d): %v", kind, x, y, err)
	}
	return pc
}

func coords(moves Bitboard) []Coord {
	out := []Coord{}
	moves.Iter(func(sq Square) {
		out = append(out, Coord{X: sq.X(), Y: sq.Y()})
	})
	return out
}

func squareSet(t *testing.T, pairs ...[2]int) Bitboard {
	t.Helper()
	var bb Bitboard
	for _, p := range pairs {
		sq, ok := SquareFromCoords(p[0], p[1])
		if !ok {
			t.Fatalf("bad coordinate (%d,%d)", p[0], p[1])
		}
		bb = bb.Add(sq)
	}
	return bb
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *Board) *Piece
		want  [][2]int
	}{
		{
			name: "player first move offers single and double step",
			setup: func(t *testing.T, b *Board) *Piece {
				return mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
			},
			want: [][2]int{{4, 5}, {4, 4}},
		},
		{
			name: "double step blocked behind a clear single step",
			setup: func(t *testing.T, b *Board) *Piece {
				pc := mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
				mustPlace(t, b, TeamEnemy, Pawn, 4, 4)
				return pc
			},
			want: [][2]int{{4, 5}},
		},
		{
			name: "forward blocked even by an enemy",
			setup: func(t *testing.T, b *Board) *Piece {
				pc := mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
				mustPlace(t, b, TeamEnemy, Pawn, 4, 5)
				return pc
			},
			want: [][2]int{},
		},
		{
			name: "diagonal capture requires an enemy occupant",
			setup: func(t *testing.T, b *Board) *Piece {
				pc := mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
				mustPlace(t, b, TeamEnemy, Knight, 3, 5)
				mustPlace(t, b, TeamPlayer, Knight, 5, 5)
				return pc
			},
			want: [][2]int{{4, 5}, {4, 4}, {3, 5}},
		},
		{
			name: "enemy pawn advances toward increasing y",
			setup: func(t *testing.T, b *Board) *Piece {
				return mustPlace(t, b, TeamEnemy, Pawn, 2, 1)
			},
			want: [][2]int{{2, 2}, {2, 3}},
		},
		{
			name: "single step only after first move",
			setup: func(t *testing.T, b *Board) *Piece {
				pc := mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
				if _, err := b.MovePiece(pc, mustSquare(t, 4, 5)); err != nil {
					t.Fatalf("advance pawn: %v", err)
				}
				return pc
			},
			want: [][2]int{{4, 4}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(nil)
			pc := tt.setup(t, b)
			got := b.LegalMoves(pc)
			want := squareSet(t, tt.want...)
			if diff := cmp.Diff(coords(want), coords(got)); diff != "" {
				t.Fatalf("legal moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func mustSquare(t *testing.T, x, y int) Square {
	t.Helper()
	sq, ok := SquareFromCoords(x, y)
	if !ok {
		t.Fatalf("bad coordinate (%d,%d)", x, y)
	}
	return sq
}

func TestRookStopsAtBlockers(t *testing.T) {
	b := NewBoard(nil)
	rook := mustPlace(t, b, TeamPlayer, Rook, 0, 0)
	mustPlace(t, b, TeamEnemy, Pawn, 0, 3)
	mustPlace(t, b, TeamPlayer, Pawn, 3, 0)

	got := b.LegalMoves(rook)

	// Vertical ray: up to and including the enemy blocker, nothing beyond.
	want := squareSet(t, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{1, 0}, [2]int{2, 0})
	if diff := cmp.Diff(coords(want), coords(got)); diff != "" {
		t.Fatalf("rook moves mismatch (-want +got):\n%s", diff)
	}
	if got.Has(mustSquare(t, 0, 4)) {
		t.Fatalf("rook jumped the enemy blocker at (0,3)")
	}
	if got.Has(mustSquare(t, 3, 0)) {
		t.Fatalf("rook captured its own pawn at (3,0)")
	}
}

func TestBishopAndQueenRays(t *testing.T) {
	b := NewBoard(nil)
	bishop := mustPlace(t, b, TeamPlayer, Bishop, 4, 4)
	mustPlace(t, b, TeamEnemy, Pawn, 6, 6)
	mustPlace(t, b, TeamPlayer, Pawn, 2, 2)

	got := b.LegalMoves(bishop)
	if !got.Has(mustSquare(t, 6, 6)) {
		t.Fatalf("expected capture square (6,6) in bishop moves")
	}
	if got.Has(mustSquare(t, 7, 7)) {
		t.Fatalf("bishop slid past the enemy at (6,6)")
	}
	if got.Has(mustSquare(t, 2, 2)) || got.Has(mustSquare(t, 1, 1)) {
		t.Fatalf("bishop moved onto or past its own pawn at (2,2)")
	}

	queen := mustPlace(t, b, TeamPlayer, Queen, 0, 7)
	qmoves := b.LegalMoves(queen)
	if qmoves.Empty() {
		t.Fatalf("queen in the open should have moves")
	}
	qmoves.Iter(func(sq Square) {
		if occ := b.pieceAt[sq]; occ != nil && occ.Team == TeamPlayer {
			t.Fatalf("queen move onto own piece at %s", sq)
		}
	})
}

func TestKnightJumpsBlockers(t *testing.T) {
	b := NewBoard(nil)
	knight := mustPlace(t, b, TeamPlayer, Knight, 4, 4)

	// Wall in every adjacent square; the knight is unaffected.
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			mustPlace(t, b, TeamEnemy, Pawn, 4+dx, 4+dy)
		}
	}

	got := b.LegalMoves(knight)
	if got.Count() != 8 {
		t.Fatalf("expected 8 knight moves from the center, got %d", got.Count())
	}

	corner := mustPlace(t, b, TeamPlayer, Knight, 0, 0)
	cm := b.LegalMoves(corner)
	if cm.Count() != 2 {
		t.Fatalf("expected 2 knight moves from (0,0), got %d", cm.Count())
	}
}

func TestKingAndBossStepOneSquare(t *testing.T) {
	b := NewBoard(nil)
	king := mustPlace(t, b, TeamPlayer, King, 4, 4)
	mustPlace(t, b, TeamPlayer, Pawn, 4, 3)
	mustPlace(t, b, TeamEnemy, Pawn, 5, 5)

	got := b.LegalMoves(king)
	if got.Count() != 7 {
		t.Fatalf("expected 7 king moves (8 minus own pawn), got %d", got.Count())
	}
	if !got.Has(mustSquare(t, 5, 5)) {
		t.Fatalf("king should be offered the enemy-occupied square")
	}

	boss := mustPlace(t, b, TeamEnemy, Boss, 0, 7)
	bm := b.LegalMoves(boss)
	if bm.Count() != 3 {
		t.Fatalf("expected 3 boss moves from the corner, got %d", bm.Count())
	}
}

func TestGeneratedMovesStayOnBoardAndOffOwnTeam(t *testing.T) {
	bt := NewBattle(NewShadowOpponent(testRNG()), testRNG(), nil)
	b := bt.Board()
	for _, pc := range b.LivePieces() {
		pc := pc
		b.LegalMoves(pc).Iter(func(sq Square) {
			if occ := b.pieceAt[sq]; occ != nil && occ.Team == pc.Team {
				t.Fatalf("%s %s offered own-team square %s", pc.Team, pc.Name(), sq)
			}
		})
	}
}

func TestRemovedPieceGeneratesNothing(t *testing.T) {
	b := NewBoard(nil)
	pawn := mustPlace(t, b, TeamEnemy, Pawn, 3, 3)
	b.removePiece(pawn)
	if got := b.LegalMoves(pawn); !got.Empty() {
		t.Fatalf("removed piece still generates moves: %v", coords(got))
	}
}
