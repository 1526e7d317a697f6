// path: internal/game/types.go
package game

import "fmt"

// Team identifies which side a piece fights for. Shadows mode has exactly
// two sides: the human player and the AI-controlled enemy.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) Opposite() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

func (t Team) Index() int { return int(t) }

func (t Team) String() string {
	if t == TeamPlayer {
		return "player"
	}
	return "enemy"
}

// Kind is the closed set of piece variants. Boss is a distinguished King
// variant: it moves like a King but carries its own stats and its removal is
// the player's victory condition.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	Boss
)

const kindCount = 7

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Boss:
		return "boss"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// KindStats holds the RPG stats a piece of the given kind starts with.
type KindStats struct {
	Name   string
	HP     int
	Damage int
}

var kindStats = [kindCount]KindStats{
	Pawn:   {Name: "Pawn", HP: 10, Damage: 5},
	Knight: {Name: "Knight", HP: 20, Damage: 10},
	Bishop: {Name: "Bishop", HP: 18, Damage: 8},
	Rook:   {Name: "Rook", HP: 25, Damage: 12},
	Queen:  {Name: "Queen", HP: 30, Damage: 15},
	King:   {Name: "King", HP: 40, Damage: 10},
	Boss:   {Name: "Fallen King", HP: 120, Damage: 20},
}

// StatsFor returns the starting stats for a kind.
func StatsFor(k Kind) KindStats {
	if int(k) >= kindCount {
		return kindStats[Pawn]
	}
	return kindStats[k]
}

// Square indexes the 8x8 grid as y*8 + x.
type Square uint8

func (s Square) X() int { return int(s) & 7 }
func (s Square) Y() int { return int(s) >> 3 }

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.X(), s.Y())
}

// SquareFromCoords maps (x, y) to a Square, rejecting off-board coordinates.
func SquareFromCoords(x, y int) (Square, bool) {
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return 0, false
	}
	return Square(y*8 + x), true
}

// Piece is a single live unit on the board.
type Piece struct {
	ID     int
	Team   Team
	Kind   Kind
	Square Square
	HP     int
	HPMax  int
	Damage int

	// FirstMoveTaken is pawn-only: once set, the double advance is gone
	// for good.
	FirstMoveTaken bool
}

// Name returns the display name of the piece's kind.
func (p *Piece) Name() string { return StatsFor(p.Kind).Name }

// IsBoss reports whether this piece is the enemy's Fallen King.
func (p *Piece) IsBoss() bool { return p.Kind == Boss }

// Move pairs a piece with a destination, as chosen by the AI collaborator.
type Move struct {
	Piece *Piece
	To    Square
}

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	ID       int    `json:"id"`
	Team     Team   `json:"team"`
	TeamName string `json:"teamName"`
	Kind     Kind   `json:"kind"`
	KindName string `json:"kindName"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	HP       int    `json:"hp"`
	HPMax    int    `json:"hpMax"`
	Damage   int    `json:"damage"`
	Boss     bool   `json:"boss"`
}

func (p *Piece) state() PieceState {
	return PieceState{
		ID:       p.ID,
		Team:     p.Team,
		TeamName: p.Team.String(),
		Kind:     p.Kind,
		KindName: p.Kind.String(),
		Name:     p.Name(),
		X:        p.Square.X(),
		Y:        p.Square.Y(),
		HP:       p.HP,
		HPMax:    p.HPMax,
		Damage:   p.Damage,
		Boss:     p.IsBoss(),
	}
}
