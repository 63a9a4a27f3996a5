// Package types provides type definitions for structured data used throughout the ranking engine.
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AnalysisUnavailable is the sentinel placed in qualitative text fields when the
// annotation provider fails or has not run yet. UIs render it as an explicit
// "analysis unavailable" state instead of crashing on missing fields.
const AnalysisUnavailable = "Analysis unavailable"

// StoredResume is a resume row as returned by the resume store.
type StoredResume struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	RawText  string `json:"raw_text"`
}

// Candidate is one resume flowing through a single ranking request.
// All fields beyond ID/Filename/RawText are derived during the pipeline and the
// whole value is discarded once the ranked result has been returned.
type Candidate struct {
	ID          string `json:"id"`
	Filename    string `json:"filename,omitempty"`
	RawText     string `json:"-"`
	Fingerprint string `json:"fingerprint"`
	IsDuplicate bool   `json:"is_duplicate"`

	// SemanticScore is the cosine similarity against the job description,
	// rounded to 4 decimals. It is kept alongside FinalScore for transparency.
	SemanticScore float64 `json:"semantic_score"`

	// Qualitative is nil during the quick pass and always non-nil on the final
	// ranked list (fallback annotations fill it when the provider fails).
	Qualitative *Annotation `json:"qualitative,omitempty"`

	// FinalScore is the sort key: min(SemanticScore + experience bonus, 1.0),
	// rounded to 2 decimals.
	FinalScore float64 `json:"final_score"`
}

// Annotation is the structured, AI-derived metadata about one candidate.
type Annotation struct {
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	ExperienceYears Years    `json:"experienceYears"`
	WhyHigh         string   `json:"whyHigh"`
	Improvement     string   `json:"improvement"`
	Summary         string   `json:"summary"`
}

// JobAnalysis is the structured breakdown of a job description produced by the
// annotation provider.
type JobAnalysis struct {
	MustHaveSkills          []string `json:"mustHaveSkills"`
	GoodToHaveSkills        []string `json:"goodToHaveSkills"`
	SoftSkills              []string `json:"softSkills"`
	ExperienceRequiredYears Years    `json:"experienceRequiredYears"`
	JobTitle                string   `json:"jobTitle"`
}

// Years is a "number or unknown" experience duration. Annotation providers
// return numbers, numeric strings like "6" or "5+", the literal "unknown", or
// nothing at all; unmarshalling never fails, it degrades to unknown.
type Years struct {
	Value float64
	Known bool
}

// KnownYears constructs a known Years value.
func KnownYears(v float64) Years {
	return Years{Value: v, Known: true}
}

// UnmarshalJSON accepts a JSON number, a numeric string (trailing "+" is
// tolerated), or anything else as unknown.
func (y *Years) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*y = Years{Value: num, Known: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "+"))
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*y = Years{Value: v, Known: true}
			return nil
		}
	}

	*y = Years{}
	return nil
}

// MarshalJSON emits the number when known and null otherwise.
func (y Years) MarshalJSON() ([]byte, error) {
	if !y.Known {
		return []byte("null"), nil
	}
	return json.Marshal(y.Value)
}

// AtLeast reports whether the value is known and greater than or equal to n.
func (y Years) AtLeast(n float64) bool {
	return y.Known && y.Value >= n
}

// Positive reports whether the value is known and strictly greater than zero.
func (y Years) Positive() bool {
	return y.Known && y.Value > 0
}
