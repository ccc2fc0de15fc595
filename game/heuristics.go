package game

// ScalingHeuristic is how much more a run of n pieces is worth than a run
// of n-1: a window holding n uncontested pieces scores ScalingHeuristic^(n-1).
const ScalingHeuristic = 10

// Evaluate judges a position by how close each color is to completing a
// run. Every board-spanning strip is scanned, so empty cells that could
// extend a run still contribute. Positive favors PlayerTwo, negative
// PlayerOne. The result is always far inside the sentinel scores used for
// decided games.
func Evaluate(b *Board) int64 {
	return scoreStrips(b.horizontalStrips(true)) +
		scoreStrips(b.verticalStrips(true)) +
		scoreStrips(b.upwardDiagonalStrips(true)) +
		scoreStrips(b.downwardDiagonalStrips(true))
}

func scoreStrips(strips [][]Cell) int64 {
	var score int64
	for _, strip := range strips {
		score += scoreStrip(strip)
	}
	return score
}

func scoreStrip(strip []Cell) int64 {
	var score int64
	for _, counts := range windowCounts(strip) {
		score += scoreWindow(counts)
	}
	return score
}

// scoreWindow awards a window only when one color occupies it uncontested;
// a window holding both colors can never complete and is worthless.
func scoreWindow(counts [2]int) int64 {
	switch {
	case counts[0] > 0 && counts[1] == 0:
		return -pow(ScalingHeuristic, counts[0]-1)
	case counts[1] > 0 && counts[0] == 0:
		return pow(ScalingHeuristic, counts[1]-1)
	default:
		return 0
	}
}

func pow(base int64, exp int) int64 {
	result := int64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
