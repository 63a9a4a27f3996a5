// Package annotate adapts the external LLM text-analysis provider into the
// structured job/candidate annotations the ranking engine depends on. One
// batched call covers the whole candidate set, and every failure mode degrades
// to fallback annotations instead of aborting the ranking request.
package annotate

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/InnoShay/HireSight-sub000/internal/llm"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// Input caps keep the batched request within the provider's input limits.
// The exact values are not semantically important, but some cap must exist.
const (
	DefaultMaxJobChars    = 3000
	DefaultMaxResumeChars = 1500
)

// Input is one candidate submitted for annotation.
type Input struct {
	ID   string
	Text string
}

// Result is the outcome of one batched annotation call. PerCandidate is keyed
// by the same ids that were sent; candidates the provider omitted carry the
// fallback annotation. Degraded is true when the provider call failed entirely
// and everything below is fallback data.
type Result struct {
	JobAnalysis  types.JobAnalysis
	PerCandidate map[string]types.Annotation
	Degraded     bool
}

// Annotator performs batched qualitative annotation through an llm.Client.
type Annotator struct {
	client         llm.Client
	logger         *zap.Logger
	maxJobChars    int
	maxResumeChars int
}

// New creates an Annotator. A nil logger falls back to a no-op logger.
func New(client llm.Client, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{
		client:         client,
		logger:         logger,
		maxJobChars:    DefaultMaxJobChars,
		maxResumeChars: DefaultMaxResumeChars,
	}
}

// WithCaps overrides the input truncation caps. Non-positive values keep the
// defaults.
func (a *Annotator) WithCaps(maxJobChars, maxResumeChars int) *Annotator {
	if maxJobChars > 0 {
		a.maxJobChars = maxJobChars
	}
	if maxResumeChars > 0 {
		a.maxResumeChars = maxResumeChars
	}
	return a
}

// rawResponse mirrors the JSON envelope the provider is prompted to return.
type rawResponse struct {
	JobAnalysis types.JobAnalysis `json:"jobAnalysis"`
	Candidates  []rawCandidate    `json:"candidates"`
}

type rawCandidate struct {
	ID string `json:"id"`
	types.Annotation
}

// Annotate issues a single batched annotation call for the job text and all
// candidates. It never fails the ranking request: provider errors, timeouts,
// fenced or malformed payloads, and schema violations all degrade to the
// fallback result.
func (a *Annotator) Annotate(ctx context.Context, jobText string, candidates []Input) *Result {
	prompt := a.buildPrompt(jobText, candidates)

	raw, err := a.client.GenerateJSON(ctx, prompt)
	if err != nil {
		a.logger.Warn("annotation call failed, using fallback",
			zap.Int("candidates", len(candidates)),
			zap.Error(err))
		return Fallback(candidates)
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := validateResponse(cleaned); err != nil {
		a.logger.Warn("annotation response failed schema validation, using fallback",
			zap.Error(err))
		return Fallback(candidates)
	}

	var parsed rawResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		a.logger.Warn("annotation response is not valid JSON, using fallback",
			zap.Error(err))
		return Fallback(candidates)
	}

	return a.assemble(parsed, candidates)
}

// assemble matches returned annotations back to the submitted candidates by
// id. Omitted or mismatched ids get the fallback annotation.
func (a *Annotator) assemble(parsed rawResponse, candidates []Input) *Result {
	byID := make(map[string]types.Annotation, len(parsed.Candidates))
	for _, rc := range parsed.Candidates {
		if rc.ID == "" {
			continue
		}
		byID[rc.ID] = normalizeAnnotation(rc.Annotation)
	}

	per := make(map[string]types.Annotation, len(candidates))
	missing := 0
	for _, c := range candidates {
		ann, ok := byID[c.ID]
		if !ok {
			ann = FallbackAnnotation()
			missing++
		}
		per[c.ID] = ann
	}

	if missing > 0 {
		a.logger.Warn("annotation response omitted candidates, using per-candidate fallback",
			zap.Int("missing", missing),
			zap.Int("total", len(candidates)))
	}

	return &Result{
		JobAnalysis:  normalizeJobAnalysis(parsed.JobAnalysis),
		PerCandidate: per,
	}
}

func normalizeAnnotation(ann types.Annotation) types.Annotation {
	if ann.MatchedKeywords == nil {
		ann.MatchedKeywords = []string{}
	}
	if ann.MissingKeywords == nil {
		ann.MissingKeywords = []string{}
	}
	return ann
}

func normalizeJobAnalysis(ja types.JobAnalysis) types.JobAnalysis {
	if ja.MustHaveSkills == nil {
		ja.MustHaveSkills = []string{}
	}
	if ja.GoodToHaveSkills == nil {
		ja.GoodToHaveSkills = []string{}
	}
	if ja.SoftSkills == nil {
		ja.SoftSkills = []string{}
	}
	return ja
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
