package engine

// onFilledRows scores a line clear and handles leveling. A count outside
// 1..4 cannot come from a single piece and is recorded as ErrAssert.
func (g *Game) onFilledRows(filled int) {
	g.stats.Lines += filled

	if filled < 1 || filled > len(g.cfg.RowScores) {
		g.errorCode = ErrAssert
	} else {
		g.stats.Score += int64(g.cfg.RowScores[filled-1]) * int64(g.stats.Level+1)
	}

	if g.stats.Lines >= g.cfg.RowsPerLevel*(g.stats.Level+1) {
		g.stats.Level++
		g.fallingDelay = g.cfg.DelayFactor * g.fallingDelay / g.cfg.DelayDivisor
		if g.fallingDelay < g.cfg.MinFallDelay {
			g.fallingDelay = g.cfg.MinFallDelay
		}
	}
}

// softDropScore is the reward for one player-requested step down.
func (g *Game) softDropScore() int64 {
	return int64(g.cfg.RowScores[1]) * int64(g.stats.Level+1) / int64(g.cfg.SoftDropDivisor)
}
