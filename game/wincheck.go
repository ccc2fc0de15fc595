package game

// DoesColorWin reports whether the given color has a completed run of
// WinLength anywhere on the board. Horizontal runs are possible from the
// first move, the other three directions only once some column holds at
// least WinLength pieces.
func DoesColorWin(b *Board, p Piece) bool {
	if hasWin(b.horizontalStrips(false), p) {
		return true
	}
	if b.MaxHeight() < WinLength {
		return false
	}
	return hasWin(b.verticalStrips(false), p) ||
		hasWin(b.upwardDiagonalStrips(false), p) ||
		hasWin(b.downwardDiagonalStrips(false), p)
}

func hasWin(strips [][]Cell, p Piece) bool {
	idx := 0
	if p == PlayerTwo {
		idx = 1
	}
	for _, strip := range strips {
		if len(strip) < WinLength {
			continue
		}
		for _, counts := range windowCounts(strip) {
			if counts[idx] == WinLength {
				return true
			}
		}
	}
	return false
}

// IsGameOver resolves the outcome of a position given the player to move
// next. The player who just moved is checked first since only their last
// drop can have completed a run.
func IsGameOver(b *Board, turn Piece) Outcome {
	mover := turn.Opponent()
	if DoesColorWin(b, mover) {
		return winFor(mover)
	}
	if DoesColorWin(b, turn) {
		return winFor(turn)
	}
	if b.IsFull() {
		return Tie
	}
	return InProgress
}

func winFor(p Piece) Outcome {
	if p == PlayerOne {
		return OneWins
	}
	return TwoWins
}
