// path: internal/game/battle.go
package game

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// Phase is the battle controller's state.
type Phase uint8

const (
	PhasePlayerTurn Phase = iota
	PhaseEnemyTurn
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "playerTurn"
	case PhaseEnemyTurn:
		return "enemyTurn"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", p)
	}
}

// Outcome is set once the battle reaches a terminal state.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// summonChance is the per-enemy-turn probability of invoking the
// collaborator's summon capability.
const summonChance = 0.30

// Battle is the turn state machine. Control alternates between the player
// and the AI side until the Boss or the player's King is removed; the
// controller is the only component allowed to mutate the board.
type Battle struct {
	board    *Board
	opponent Opponent
	rng      *rand.Rand
	log      *zap.Logger

	phase    Phase
	outcome  Outcome
	selected *Piece
	turn     int
	journal  journal
}

// NewBattle sets up the initial formation and hands the first turn to the
// player.
func NewBattle(opponent Opponent, rng *rand.Rand, log *zap.Logger) *Battle {
	if log == nil {
		log = zap.NewNop()
	}
	bt := &Battle{opponent: opponent, rng: rng, log: log}
	bt.Reset()
	return bt
}

// Reset clears the match and rebuilds the starting formation.
func (bt *Battle) Reset() {
	bt.board = NewBoard(bt.log)
	bt.phase = PhasePlayerTurn
	bt.outcome = OutcomeNone
	bt.selected = nil
	bt.turn = 1
	bt.journal.reset()
	bt.setup()
}

func (bt *Battle) setup() {
	place := func(team Team, kind Kind, x, y int) {
		if _, err := bt.board.Place(team, kind, x, y); err != nil {
			panic(err) // Initial formation never collides
		}
	}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, kind := range backRank {
		place(TeamPlayer, kind, x, 7)
	}
	for x := 0; x < 8; x++ {
		place(TeamPlayer, Pawn, x, 6)
	}

	place(TeamEnemy, Boss, 4, 0)
	place(TeamEnemy, Knight, 3, 0)
	place(TeamEnemy, Knight, 5, 0)
	place(TeamEnemy, Bishop, 2, 0)
	place(TeamEnemy, Bishop, 6, 0)
	for x := 2; x <= 6; x++ {
		place(TeamEnemy, Pawn, x, 1)
	}
}

// Board exposes the live board for read-only queries.
func (bt *Battle) Board() *Board { return bt.board }

func (bt *Battle) Phase() Phase     { return bt.phase }
func (bt *Battle) Outcome() Outcome { return bt.outcome }
func (bt *Battle) Selected() *Piece { return bt.selected }
func (bt *Battle) Turn() int        { return bt.turn }

// Select feeds one board click into the player's selection state machine:
// clicking an own piece selects it, clicking it again deselects, clicking a
// legal destination moves, and anything else reselects or clears. Invalid
// clicks are deliberate no-ops, never faults.
func (bt *Battle) Select(x, y int) error {
	if bt.phase == PhaseFinished {
		return ErrMatchOver
	}
	if bt.phase != PhasePlayerTurn {
		return ErrNotYourTurn
	}
	if _, ok := SquareFromCoords(x, y); !ok {
		return ErrOffBoard
	}

	clicked := bt.board.PieceAt(x, y)

	if bt.selected == nil {
		if clicked != nil && clicked.Team == TeamPlayer {
			bt.selected = clicked
		}
		return nil
	}

	if clicked == bt.selected {
		bt.selected = nil
		return nil
	}

	dest, _ := SquareFromCoords(x, y)
	if bt.board.LegalMoves(bt.selected).Has(dest) {
		pc := bt.selected
		bt.selected = nil
		return bt.applyMove(pc, dest)
	}

	if clicked != nil && clicked.Team == TeamPlayer {
		bt.selected = clicked
	} else {
		bt.selected = nil
	}
	return nil
}

// PlayerMove applies an explicit (from, to) move for the player side,
// bypassing the click selection.
func (bt *Battle) PlayerMove(fromX, fromY, toX, toY int) error {
	if bt.phase == PhaseFinished {
		return ErrMatchOver
	}
	if bt.phase != PhasePlayerTurn {
		return ErrNotYourTurn
	}
	to, ok := SquareFromCoords(toX, toY)
	if !ok {
		return ErrOffBoard
	}
	pc := bt.board.PieceAt(fromX, fromY)
	if pc == nil {
		return ErrNoPiece
	}
	if pc.Team != TeamPlayer {
		return ErrWrongTeam
	}
	if !bt.board.LegalMoves(pc).Has(to) {
		return ErrIllegalMove
	}
	bt.selected = nil
	return bt.applyMove(pc, to)
}

// EnemyTurn runs one complete AI turn: the summon roll, then one move
// request. A collaborator with no move simply cedes the turn back.
func (bt *Battle) EnemyTurn() error {
	if bt.phase == PhaseFinished {
		return ErrMatchOver
	}
	if bt.phase != PhaseEnemyTurn {
		return ErrNotYourTurn
	}

	if bt.rng.Float64() < summonChance {
		if pc := bt.opponent.Summon(bt.board); pc != nil {
			bt.journal.recordSummon(bt.turn, pc)
			bt.log.Info("summon",
				zap.String("piece", pc.Name()),
				zap.Int("x", pc.Square.X()),
				zap.Int("y", pc.Square.Y()),
			)
		}
	}

	mv, ok := bt.opponent.ChooseMove(bt.board)
	if !ok || !bt.board.Holds(mv.Piece) || mv.Piece.Team != TeamEnemy ||
		!bt.board.LegalMoves(mv.Piece).Has(mv.To) {
		// No usable decision: cede the turn with nothing moved.
		bt.journal.recordPass(bt.turn, TeamEnemy)
		bt.endTurn()
		return nil
	}

	return bt.applyMove(mv.Piece, mv.To)
}

// applyMove commits one validated move: board mutation, journal record,
// terminal evaluation, then the turn flip.
func (bt *Battle) applyMove(pc *Piece, to Square) error {
	out, err := bt.board.MovePiece(pc, to)
	if err != nil {
		return err
	}
	bt.journal.recordMove(bt.turn, pc, out)
	bt.log.Info("move",
		zap.String("team", pc.Team.String()),
		zap.String("piece", pc.Name()),
		zap.String("from", out.From.String()),
		zap.String("to", out.To.String()),
		zap.Bool("relocated", out.Relocated),
	)

	if bt.checkTerminal() {
		return nil
	}
	bt.endTurn()
	return nil
}

// checkTerminal evaluates the match-ending conditions in victory-first
// order: a simultaneous boss and king removal counts as a win.
func (bt *Battle) checkTerminal() bool {
	switch {
	case bt.board.BossDefeated():
		bt.finish(OutcomeVictory, eventVictory)
	case bt.board.PlayerKingDefeated():
		bt.finish(OutcomeDefeat, eventDefeat)
	default:
		return false
	}
	return true
}

func (bt *Battle) finish(outcome Outcome, event string) {
	bt.phase = PhaseFinished
	bt.outcome = outcome
	bt.selected = nil
	bt.journal.recordOutcome(bt.turn, event)
	bt.log.Info("match finished",
		zap.String("outcome", outcome.String()),
		zap.Int("turn", bt.turn),
	)
}

func (bt *Battle) endTurn() {
	if bt.phase == PhasePlayerTurn {
		bt.phase = PhaseEnemyTurn
		return
	}
	bt.phase = PhasePlayerTurn
	bt.turn++
}

// Coord is a serializable grid coordinate.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BattleState is a serializable snapshot of the match.
type BattleState struct {
	Phase       Phase        `json:"phase"`
	PhaseName   string       `json:"phaseName"`
	Outcome     Outcome      `json:"outcome"`
	OutcomeName string       `json:"outcomeName"`
	Turn        int          `json:"turn"`
	Pieces      []PieceState `json:"pieces"`
	Selected    *PieceState  `json:"selected,omitempty"`
	LegalMoves  []Coord      `json:"legalMoves,omitempty"`
	Journal     []Entry      `json:"journal"`
}

// State captures the current match for the serving layer.
func (bt *Battle) State() BattleState {
	state := BattleState{
		Phase:       bt.phase,
		PhaseName:   bt.phase.String(),
		Outcome:     bt.outcome,
		OutcomeName: bt.outcome.String(),
		Turn:        bt.turn,
		Pieces:      make([]PieceState, 0, 32),
		Journal:     append([]Entry(nil), bt.journal.entries...),
	}
	for _, pc := range bt.board.LivePieces() {
		state.Pieces = append(state.Pieces, pc.state())
	}
	if bt.selected != nil {
		sel := bt.selected.state()
		state.Selected = &sel
		bt.board.LegalMoves(bt.selected).Iter(func(sq Square) {
			state.LegalMoves = append(state.LegalMoves, Coord{X: sq.X(), Y: sq.Y()})
		})
	}
	return state
}
