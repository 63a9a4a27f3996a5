package annotate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// fakeClient returns a canned response (or error) and records the prompt.
type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

const validResponse = `{
  "jobAnalysis": {
    "mustHaveSkills": ["Python", "AWS"],
    "goodToHaveSkills": ["Terraform"],
    "softSkills": ["communication"],
    "experienceRequiredYears": 5,
    "jobTitle": "Senior Python Developer"
  },
  "candidates": [
    {
      "id": "c1",
      "matchedKeywords": ["Python", "AWS"],
      "missingKeywords": [],
      "experienceYears": 6,
      "whyHigh": "Strong direct match",
      "improvement": "Add Terraform",
      "summary": "Python AWS engineer"
    },
    {
      "id": "c2",
      "matchedKeywords": [],
      "missingKeywords": ["Python", "AWS"],
      "experienceYears": "unknown",
      "whyHigh": "Limited overlap",
      "improvement": "Learn Python",
      "summary": "Java developer"
    }
  ]
}`

func inputs() []Input {
	return []Input{
		{ID: "c1", Text: "Python AWS engineer, 6 years experience"},
		{ID: "c2", Text: "Java developer, 2 years"},
	}
}

func TestAnnotate_Success(t *testing.T) {
	client := &fakeClient{response: validResponse}
	res := New(client, nil).Annotate(context.Background(), "Senior Python Developer, 5+ years, AWS required", inputs())

	require.NotNil(t, res)
	assert.False(t, res.Degraded)
	assert.Equal(t, "Senior Python Developer", res.JobAnalysis.JobTitle)
	assert.Equal(t, []string{"Python", "AWS"}, res.JobAnalysis.MustHaveSkills)
	assert.True(t, res.JobAnalysis.ExperienceRequiredYears.AtLeast(5))

	require.Contains(t, res.PerCandidate, "c1")
	c1 := res.PerCandidate["c1"]
	assert.Equal(t, []string{"Python", "AWS"}, c1.MatchedKeywords)
	assert.True(t, c1.ExperienceYears.AtLeast(6))
	assert.Equal(t, "Strong direct match", c1.WhyHigh)

	c2 := res.PerCandidate["c2"]
	assert.False(t, c2.ExperienceYears.Known)
	assert.Equal(t, []string{}, c2.MatchedKeywords)
}

func TestAnnotate_FencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n" + validResponse + "\n```"}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.False(t, res.Degraded)
	assert.Equal(t, "Senior Python Developer", res.JobAnalysis.JobTitle)
}

func TestAnnotate_ProviderError(t *testing.T) {
	client := &fakeClient{err: errors.New("provider unavailable")}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	require.NotNil(t, res)
	assert.True(t, res.Degraded)
	assert.Equal(t, []string{"general role requirements"}, res.JobAnalysis.MustHaveSkills)
	assert.False(t, res.JobAnalysis.ExperienceRequiredYears.Known)

	for _, id := range []string{"c1", "c2"} {
		ann := res.PerCandidate[id]
		assert.Equal(t, types.AnalysisUnavailable, ann.WhyHigh)
		assert.Equal(t, types.AnalysisUnavailable, ann.Summary)
		assert.False(t, ann.ExperienceYears.Known)
		assert.Empty(t, ann.MatchedKeywords)
	}
}

func TestAnnotate_MalformedJSON(t *testing.T) {
	client := &fakeClient{response: "this is not json at all"}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.True(t, res.Degraded)
	assert.Len(t, res.PerCandidate, 2)
}

func TestAnnotate_SchemaViolation(t *testing.T) {
	// candidates must be an array; a wrong envelope shape triggers fallback
	// even though the payload is valid JSON.
	client := &fakeClient{response: `{"jobAnalysis": {}, "candidates": {"id": "c1"}}`}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.True(t, res.Degraded)
}

func TestAnnotate_MissingEnvelopeField(t *testing.T) {
	client := &fakeClient{response: `{"candidates": []}`}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.True(t, res.Degraded)
}

func TestAnnotate_OmittedCandidateGetsFallback(t *testing.T) {
	// Response only covers c1; c2 gets the fallback annotation, not a crash.
	response := `{
	  "jobAnalysis": {"mustHaveSkills": ["Go"], "jobTitle": "Engineer"},
	  "candidates": [{"id": "c1", "matchedKeywords": ["Go"], "experienceYears": 3, "whyHigh": "match", "improvement": "", "summary": "ok"}]
	}`
	client := &fakeClient{response: response}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.False(t, res.Degraded)
	assert.Equal(t, []string{"Go"}, res.PerCandidate["c1"].MatchedKeywords)
	assert.Equal(t, types.AnalysisUnavailable, res.PerCandidate["c2"].WhyHigh)
}

func TestAnnotate_UnknownIDIgnored(t *testing.T) {
	response := `{
	  "jobAnalysis": {},
	  "candidates": [{"id": "someone-else", "summary": "ghost"}]
	}`
	client := &fakeClient{response: response}
	res := New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.Len(t, res.PerCandidate, 2)
	assert.Equal(t, types.AnalysisUnavailable, res.PerCandidate["c1"].Summary)
	assert.NotContains(t, res.PerCandidate, "someone-else")
}

func TestAnnotate_TruncatesOversizedInputs(t *testing.T) {
	client := &fakeClient{response: validResponse}
	a := New(client, nil).WithCaps(50, 20)

	longJob := strings.Repeat("j", 500)
	longResume := strings.Repeat("r", 300)
	a.Annotate(context.Background(), longJob, []Input{{ID: "c1", Text: longResume}})

	assert.Contains(t, client.prompt, strings.Repeat("j", 50))
	assert.NotContains(t, client.prompt, strings.Repeat("j", 51))
	assert.Contains(t, client.prompt, strings.Repeat("r", 20))
	assert.NotContains(t, client.prompt, strings.Repeat("r", 21))
}

func TestAnnotate_PromptCarriesCandidateIDs(t *testing.T) {
	client := &fakeClient{response: validResponse}
	New(client, nil).Annotate(context.Background(), "job", inputs())

	assert.Contains(t, client.prompt, "candidate id: c1")
	assert.Contains(t, client.prompt, "candidate id: c2")
}

func TestYears_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		known bool
		value float64
	}{
		{"number", `6`, true, 6},
		{"float", `4.5`, true, 4.5},
		{"numeric string", `"7"`, true, 7},
		{"plus suffix", `"5+"`, true, 5},
		{"unknown marker", `"unknown"`, false, 0},
		{"null", `null`, false, 0},
		{"object", `{"years": 3}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y types.Years
			require.NoError(t, y.UnmarshalJSON([]byte(tt.json)))
			assert.Equal(t, tt.known, y.Known)
			if tt.known {
				assert.Equal(t, tt.value, y.Value)
			}
		})
	}
}
