package game

import "skyjo/utils"

// ShouldDouble reports whether the trigger's round score is doubled: it is when the score
// exceeds the round minimum, or when it equals a minimum shared with another player and is
// positive.
func ShouldDouble(scores []int, trigger int) bool {
	minimum := utils.Min(scores)
	score := scores[trigger]
	return score > minimum ||
		(score == minimum && utils.Count(scores, minimum) > 1 && score > 0)
}

// ApplyDoublePenalty doubles the trigger's score in place when ShouldDouble holds.
func ApplyDoublePenalty(scores []int, trigger int) bool {
	if !ShouldDouble(scores, trigger) {
		return false
	}
	scores[trigger] *= 2
	return true
}

// Winners returns the players holding the minimum score; low score wins.
func Winners(scores []int) []int {
	return utils.IndexesOf(scores, utils.Min(scores))
}
