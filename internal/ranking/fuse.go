// Package ranking provides the final score fusion for candidate ranking:
// semantic score plus a deterministic experience bonus, clamped, rounded, and
// stable-sorted.
package ranking

import (
	"sort"

	"github.com/InnoShay/HireSight-sub000/internal/scoring"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// ExperienceBonus is the fixed score adjustment applied when a candidate's
// annotated experience meets or exceeds the job's required experience.
const ExperienceBonus = 0.1

// Rank computes FinalScore for every candidate and returns the slice sorted
// descending by FinalScore. The sort is stable: candidates with equal scores
// keep their relative input order, so identical input always produces an
// identical ranking. SemanticScore is never mutated.
//
// The bonus is applied at most once per candidate: iff the job analysis
// requires a known positive number of years AND the candidate's annotated
// experience is a known number greater than or equal to it. FinalScore is
// clamped to 1.0 before rounding to 2 decimals.
func Rank(candidates []types.Candidate, analysis types.JobAnalysis) []types.Candidate {
	for i := range candidates {
		bonus := 0.0
		if qualifiesForBonus(&candidates[i], analysis) {
			bonus = ExperienceBonus
		}

		final := candidates[i].SemanticScore + bonus
		if final > 1.0 {
			final = 1.0
		}
		candidates[i].FinalScore = scoring.Round(final, 2)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalScore > candidates[j].FinalScore
	})

	return candidates
}

// RankBySemantic sorts candidates descending by SemanticScore (stable) and
// fills FinalScore from the semantic score alone. This is the quick-pass
// ordering returned before qualitative annotation completes.
func RankBySemantic(candidates []types.Candidate) []types.Candidate {
	for i := range candidates {
		candidates[i].FinalScore = scoring.Round(candidates[i].SemanticScore, 2)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SemanticScore > candidates[j].SemanticScore
	})

	return candidates
}

func qualifiesForBonus(c *types.Candidate, analysis types.JobAnalysis) bool {
	if !analysis.ExperienceRequiredYears.Positive() {
		return false
	}
	if c.Qualitative == nil {
		return false
	}
	return c.Qualitative.ExperienceYears.AtLeast(analysis.ExperienceRequiredYears.Value)
}
