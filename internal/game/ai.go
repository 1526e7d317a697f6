// path: internal/game/ai.go
package game

import "math/rand"

// Opponent is the AI collaborator driving the enemy side. The controller
// only contracts the invocation points: one ChooseMove per enemy turn, one
// Summon per enemy turn that wins the summon roll. Anything Summon places on
// the board becomes an ordinary live piece under the same rules.
type Opponent interface {
	Name() string
	ChooseMove(b *Board) (Move, bool)
	Summon(b *Board) *Piece
}

// ShadowOpponent is the stock enemy: it takes a random capture when one
// exists, otherwise a random legal move, and summons shadow reinforcements
// onto free squares in its own half.
type ShadowOpponent struct {
	rng *rand.Rand
}

func NewShadowOpponent(rng *rand.Rand) *ShadowOpponent {
	return &ShadowOpponent{rng: rng}
}

func (o *ShadowOpponent) Name() string { return "shadow" }

func (o *ShadowOpponent) ChooseMove(b *Board) (Move, bool) {
	var all []Move
	var captures []Move

	for _, pc := range b.TeamPieces(TeamEnemy) {
		pc := pc
		b.LegalMoves(pc).Iter(func(to Square) {
			mv := Move{Piece: pc, To: to}
			all = append(all, mv)
			if victim := b.pieceAt[to]; victim != nil && victim.Team != pc.Team {
				captures = append(captures, mv)
			}
		})
	}

	if len(captures) > 0 {
		return captures[o.rng.Intn(len(captures))], true
	}
	if len(all) > 0 {
		return all[o.rng.Intn(len(all))], true
	}
	return Move{}, false
}

// Summon places one reinforcement on a random free square in the enemy half.
// Mostly pawns, the odd knight. Returns nil when the half is full.
func (o *ShadowOpponent) Summon(b *Board) *Piece {
	var free []Square
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if b.PieceAt(x, y) == nil {
				sq, _ := SquareFromCoords(x, y)
				free = append(free, sq)
			}
		}
	}
	if len(free) == 0 {
		return nil
	}

	kind := Pawn
	if o.rng.Intn(5) == 0 {
		kind = Knight
	}
	sq := free[o.rng.Intn(len(free))]
	pc, err := b.Place(TeamEnemy, kind, sq.X(), sq.Y())
	if err != nil {
		return nil
	}
	return pc
}
