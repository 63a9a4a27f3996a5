package dedupe

import (
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// MarkDuplicates fills Fingerprint and IsDuplicate on every candidate and
// returns the annotated slice. Marking is batch-scoped and order-dependent:
// the first candidate seen with a given fingerprint is the original, every
// later one is a duplicate. Callers must pass candidates in store-lookup
// order so marking is reproducible.
func MarkDuplicates(candidates []types.Candidate) []types.Candidate {
	seen := make(map[string]bool, len(candidates))
	for i := range candidates {
		fp := Fingerprint(candidates[i].RawText)
		candidates[i].Fingerprint = fp
		candidates[i].IsDuplicate = seen[fp]
		seen[fp] = true
	}
	return candidates
}
