// path: internal/game/combat_test.go
package game

import "testing"

func TestApplyDamageSurvivor(t *testing.T) {
	b := NewBoard(nil)
	knight := mustPlace(t, b, TeamEnemy, Knight, 2, 2)

	died := b.ApplyDamage(knight, 8)
	if died {
		t.Fatalf("knight with %d hp died to 8 damage", knight.HPMax)
	}
	if knight.HP != 12 {
		t.Fatalf("expected 12 hp remaining, got %d", knight.HP)
	}
	if !b.Holds(knight) {
		t.Fatalf("surviving piece left the board")
	}
}

func TestApplyDamageRemovesTheDead(t *testing.T) {
	b := NewBoard(nil)
	pawn := mustPlace(t, b, TeamPlayer, Pawn, 1, 6)

	died := b.ApplyDamage(pawn, 12)
	if !died {
		t.Fatalf("pawn with 10 hp survived 12 damage")
	}
	if b.PieceAt(1, 6) != nil {
		t.Fatalf("dead pawn still answers PieceAt")
	}
	for _, pc := range b.LivePieces() {
		if pc == pawn {
			t.Fatalf("dead pawn still iterated by LivePieces")
		}
	}
}

func TestMoveResolvesLethalCapture(t *testing.T) {
	b := NewBoard(nil)
	queen := mustPlace(t, b, TeamPlayer, Queen, 0, 0)
	pawn := mustPlace(t, b, TeamEnemy, Pawn, 0, 3)

	out, err := b.MovePiece(queen, mustSquare(t, 0, 3))
	if err != nil {
		t.Fatalf("move queen: %v", err)
	}
	if !out.TargetDied || out.Target != pawn {
		t.Fatalf("expected lethal capture of the pawn, got %+v", out)
	}
	if out.DamageDealt != queen.Damage {
		t.Fatalf("expected %d damage dealt, got %d", queen.Damage, out.DamageDealt)
	}
	if !out.Relocated || b.PieceAt(0, 3) != queen {
		t.Fatalf("queen did not take the vacated square")
	}
	if b.Holds(pawn) {
		t.Fatalf("captured pawn still on the board")
	}
}

func TestAttackerHoldsPositionWhenDefenderSurvives(t *testing.T) {
	b := NewBoard(nil)
	pawn := mustPlace(t, b, TeamPlayer, Pawn, 4, 6)
	rook := mustPlace(t, b, TeamEnemy, Rook, 3, 5)

	out, err := b.MovePiece(pawn, mustSquare(t, 3, 5))
	if err != nil {
		t.Fatalf("pawn attack: %v", err)
	}
	if out.TargetDied {
		t.Fatalf("rook with 25 hp died to a 5 damage pawn")
	}
	if out.Relocated {
		t.Fatalf("attacker advanced onto an occupied square")
	}
	if b.PieceAt(4, 6) != pawn || b.PieceAt(3, 5) != rook {
		t.Fatalf("board occupancy corrupted after surviving defender")
	}
	if rook.HP != 20 {
		t.Fatalf("expected rook at 20 hp, got %d", rook.HP)
	}
	// The attack spends the pawn's first move either way.
	if !pawn.FirstMoveTaken {
		t.Fatalf("post-move hook did not run on an attack in place")
	}
}

func TestMoveOntoAllyRejected(t *testing.T) {
	b := NewBoard(nil)
	rook := mustPlace(t, b, TeamPlayer, Rook, 0, 0)
	mustPlace(t, b, TeamPlayer, Pawn, 0, 3)

	if _, err := b.MovePiece(rook, mustSquare(t, 0, 3)); err == nil {
		t.Fatalf("expected error moving onto an ally")
	}
	if b.PieceAt(0, 0) != rook {
		t.Fatalf("rejected move mutated the board")
	}
}

func TestHPNeverExceedsMax(t *testing.T) {
	b := NewBoard(nil)
	for _, pc := range []*Piece{
		mustPlace(t, b, TeamPlayer, King, 4, 7),
		mustPlace(t, b, TeamEnemy, Boss, 4, 0),
	} {
		if pc.HP != pc.HPMax || pc.HP <= 0 {
			t.Fatalf("%s spawned with hp %d/%d", pc.Name(), pc.HP, pc.HPMax)
		}
	}
}
