// path: internal/game/journal.go
package game

// Entry is one recorded battle event. The journal is append-only; Shadows
// mode has no undo.
type Entry struct {
	Seq    int    `json:"seq"`
	Turn   int    `json:"turn"`
	Team   string `json:"team"`
	Event  string `json:"event"`
	Piece  string `json:"piece,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Target string `json:"target,omitempty"`
	Damage int    `json:"damage,omitempty"`
	Died   bool   `json:"died,omitempty"`
}

const (
	eventMove    = "move"
	eventAttack  = "attack"
	eventSummon  = "summon"
	eventPass    = "pass"
	eventVictory = "victory"
	eventDefeat  = "defeat"
)

type journal struct {
	entries []Entry
	seq     int
}

func (j *journal) append(e Entry) {
	j.seq++
	e.Seq = j.seq
	j.entries = append(j.entries, e)
}

func (j *journal) recordMove(turn int, pc *Piece, out MoveOutcome) {
	e := Entry{
		Turn:  turn,
		Team:  pc.Team.String(),
		Event: eventMove,
		Piece: pc.Name(),
		FromX: out.From.X(),
		FromY: out.From.Y(),
		ToX:   out.To.X(),
		ToY:   out.To.Y(),
	}
	if out.Target != nil {
		e.Event = eventAttack
		e.Target = out.Target.Name()
		e.Damage = out.DamageDealt
		e.Died = out.TargetDied
	}
	j.append(e)
}

func (j *journal) recordSummon(turn int, pc *Piece) {
	j.append(Entry{
		Turn:  turn,
		Team:  pc.Team.String(),
		Event: eventSummon,
		Piece: pc.Name(),
		ToX:   pc.Square.X(),
		ToY:   pc.Square.Y(),
	})
}

func (j *journal) recordPass(turn int, team Team) {
	j.append(Entry{Turn: turn, Team: team.String(), Event: eventPass})
}

func (j *journal) recordOutcome(turn int, event string) {
	j.append(Entry{Turn: turn, Event: event})
}

func (j *journal) reset() {
	j.entries = nil
	j.seq = 0
}
