package searcher

import (
	"math"

	"fourline/game"
)

// Sentinel scores for decided games. The heuristic stays many orders of
// magnitude inside them, so a sentinel always means a proven result.
const (
	ScoreMin int64 = math.MinInt64
	ScoreMax int64 = math.MaxInt64
)

// HowGoodIs scores a position by searching the generated tree with
// alpha-beta pruning, falling back to the heuristic at unexpanded leaves.
// Positive favors PlayerTwo. Scores are memoized in the given table, which
// must be fresh for each search since they depend on how far the tree has
// been expanded.
func HowGoodIs(state *BoardState, scores *Table[int64]) int64 {
	return state.alphaBeta(ScoreMin, ScoreMax, scores)
}

func (s *BoardState) alphaBeta(alpha, beta int64, scores *Table[int64]) int64 {
	switch s.outcome {
	case game.Tie:
		return 0
	case game.OneWins:
		return ScoreMin
	case game.TwoWins:
		return ScoreMax
	}

	if score, _, ok := scores.Lookup(&s.Board); ok {
		return score
	}

	if len(s.children) == 0 {
		score := game.Evaluate(&s.Board)
		scores.Insert(&s.Board, score)
		return score
	}

	var value int64
	if s.turn == game.PlayerTwo {
		value = ScoreMin
		for i := range s.children {
			value = max(value, s.children[i].state.alphaBeta(alpha, beta, scores))
			if value >= beta {
				break
			}
			alpha = max(alpha, value)
		}
	} else {
		value = ScoreMax
		for i := range s.children {
			value = min(value, s.children[i].state.alphaBeta(alpha, beta, scores))
			if value <= alpha {
				break
			}
			beta = min(beta, value)
		}
	}
	scores.Insert(&s.Board, value)
	return value
}

// NegateScore reads a score from the opponent's point of view. The
// sentinels would overflow under ordinary negation and map to each other
// instead.
func NegateScore(score int64) int64 {
	switch score {
	case ScoreMin:
		return ScoreMax
	case ScoreMax:
		return ScoreMin
	default:
		return -score
	}
}

// MoveScores evaluates every expanded move at this node, oriented so that
// a higher score is always better for the player to move.
func (s *BoardState) MoveScores() map[int]int64 {
	scores := make(map[int]int64, len(s.children))
	memo := NewTable[int64]()
	for i := range s.children {
		score := HowGoodIs(s.children[i].state, memo)
		if s.turn == game.PlayerOne {
			score = NegateScore(score)
		}
		scores[s.children[i].lastMove] = score
	}
	return scores
}
