package annotate

import (
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// FallbackAnnotation returns the annotation used when the provider fails or
// omits a candidate. Text fields carry the explicit "unavailable" sentinel so
// downstream consumers render a clear state instead of nulls.
func FallbackAnnotation() types.Annotation {
	return types.Annotation{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		WhyHigh:         types.AnalysisUnavailable,
		Improvement:     types.AnalysisUnavailable,
		Summary:         types.AnalysisUnavailable,
	}
}

// FallbackJobAnalysis returns the job analysis used when the provider fails.
// The marker skill list is contrived on purpose; it signals degraded analysis
// without breaking the response shape. The unknown experience requirement
// guarantees the experience bonus is never applied from fallback data.
func FallbackJobAnalysis() types.JobAnalysis {
	return types.JobAnalysis{
		MustHaveSkills:   []string{"general role requirements"},
		GoodToHaveSkills: []string{},
		SoftSkills:       []string{},
		JobTitle:         types.AnalysisUnavailable,
	}
}

// Fallback builds a fully degraded Result covering every submitted candidate.
func Fallback(candidates []Input) *Result {
	per := make(map[string]types.Annotation, len(candidates))
	for _, c := range candidates {
		per[c.ID] = FallbackAnnotation()
	}
	return &Result{
		JobAnalysis:  FallbackJobAnalysis(),
		PerCandidate: per,
		Degraded:     true,
	}
}
