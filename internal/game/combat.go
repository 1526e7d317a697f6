// path: internal/game/combat.go
package game

import "go.uber.org/zap"

// ApplyDamage reduces pc's hit points by amount and reports whether it died.
// A piece driven to zero or below is removed from the board immediately;
// there is no corpse state and hit points never recover.
func (b *Board) ApplyDamage(pc *Piece, amount int) bool {
	pc.HP -= amount
	b.log.Info("damage",
		zap.String("piece", pc.Name()),
		zap.String("team", pc.Team.String()),
		zap.Int("amount", amount),
		zap.Int("hp", pc.HP),
		zap.Int("hpMax", pc.HPMax),
	)
	if pc.HP <= 0 {
		b.removePiece(pc)
		b.log.Info("piece destroyed",
			zap.String("piece", pc.Name()),
			zap.String("team", pc.Team.String()),
			zap.Bool("boss", pc.IsBoss()),
		)
		return true
	}
	return false
}
