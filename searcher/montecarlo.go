package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"fourline/game"
)

// explorationC weighs exploration against exploitation in UCB1. Square
// root of two.
const explorationC = 1.414

// RolloutResults accumulates Monte-Carlo statistics for one node. Both
// counters are doubled so that a tie can award half a win in integer
// arithmetic: success is 2*wins + ties and total is 2*rollouts.
type RolloutResults struct {
	success uint64
	total   uint64
}

// Score is the observed win rate, in [0, 1].
func (r RolloutResults) Score() float64 {
	return float64(r.success) / float64(r.total)
}

// Total is the number of rollouts recorded.
func (r RolloutResults) Total() int {
	return int(r.total / 2)
}

// ucb1 ranks how worthwhile it is to roll out a child next, given its
// parent's statistics. Unvisited children rank infinitely high so every
// child is tried before any is revisited.
// https://en.wikipedia.org/wiki/Monte_Carlo_tree_search#Exploration_and_exploitation
func ucb1(parent, child RolloutResults) float64 {
	if child.total == 0 {
		return math.Inf(1)
	}
	wins := float64(child.success) / 2
	visits := float64(child.total) / 2
	parentVisits := float64(parent.total) / 2
	return wins/visits + explorationC*math.Sqrt(math.Log(parentVisits)/visits)
}

// GenerateRollouts runs one rollout through each child of this node. A
// child that is already decided records its certain outcome instead of
// descending, so forced wins keep sharpening their statistics.
func (s *BoardState) GenerateRollouts(table *StateTable, rng *rand.Rand) {
	for i := range s.children {
		child := s.children[i].state
		if child.outcome == game.InProgress {
			child.selection(table, rng)
		} else {
			child.recordOutcome(child.outcome)
		}
	}
}

// selection descends along the child maximizing UCB1 until it reaches an
// unexpanded node, simulates from there, and records the result on the way
// back up.
func (s *BoardState) selection(table *StateTable, rng *rand.Rand) game.Outcome {
	if len(s.children) == 0 {
		return s.simulation(table, rng)
	}

	best := s.children[0].state
	bestRank := math.Inf(-1)
	for i := range s.children {
		rank := ucb1(s.rollouts, s.children[i].state.rollouts)
		if rank > bestRank {
			bestRank = rank
			best = s.children[i].state
		}
	}

	result := best.selection(table, rng)
	s.recordOutcome(result)
	return result
}

// simulation plays uniformly random moves from this position until the game
// resolves, expanding one ply at each step and recording the result at
// every node along the path.
func (s *BoardState) simulation(table *StateTable, rng *rand.Rand) game.Outcome {
	if s.outcome != game.InProgress {
		s.recordOutcome(s.outcome)
		return s.outcome
	}

	children := s.GenerateChildren(table)
	if len(children) == 0 {
		// already expanded through a transposition; keep walking its edges
		children = make([]*BoardState, len(s.children))
		for i := range s.children {
			children[i] = s.children[i].state
		}
	}

	result := children[rng.Intn(len(children))].simulation(table, rng)
	s.recordOutcome(result)
	return result
}

// recordOutcome folds one finished rollout into the node's counters. A win
// is credited to the positions where the winner has just moved, which are
// exactly the nodes whose player to move is the loser; a tie credits every
// node half a win.
func (s *BoardState) recordOutcome(result game.Outcome) {
	switch result {
	case game.Tie:
		s.rollouts.success++
	case game.OneWins:
		if s.turn == game.PlayerTwo {
			s.rollouts.success += 2
		}
	case game.TwoWins:
		if s.turn == game.PlayerOne {
			s.rollouts.success += 2
		}
	default:
		panic("rollout recorded without an outcome")
	}
	s.rollouts.total += 2
}

// RolloutScores maps each expanded move to its observed win rate for the
// player to move at this node. Moves that never received a rollout are
// omitted.
func (s *BoardState) RolloutScores() map[int]float64 {
	scores := make(map[int]float64, len(s.children))
	for i := range s.children {
		child := s.children[i].state
		if child.rollouts.total == 0 {
			continue
		}
		scores[s.children[i].lastMove] = child.rollouts.Score()
	}
	return scores
}
