// Package pipeline provides the two-phase ranking orchestrator: fetch,
// dedupe, semantic scoring (the quick pass), qualitative annotation, and
// score fusion into the final ranked list.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/InnoShay/HireSight-sub000/internal/annotate"
	"github.com/InnoShay/HireSight-sub000/internal/dedupe"
	"github.com/InnoShay/HireSight-sub000/internal/llm"
	"github.com/InnoShay/HireSight-sub000/internal/ranking"
	"github.com/InnoShay/HireSight-sub000/internal/scoring"
	"github.com/InnoShay/HireSight-sub000/internal/store"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// ErrEmptyJobDescription is returned when a ranking request carries no job
// description text.
var ErrEmptyJobDescription = errors.New("job description is empty")

// Phase names one stage of a ranking run, for progress reporting.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseFetching    Phase = "fetching_candidates"
	PhaseDedupe      Phase = "deduplicating"
	PhaseSemantic    Phase = "semantic_scoring"
	PhaseQuickResult Phase = "quick_result_ready"
	PhaseAnnotating  Phase = "annotating"
	PhaseFusing      Phase = "fusing"
	PhaseRanked      Phase = "ranked"
)

// ProgressEvent is one progress update during a ranking run.
type ProgressEvent struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
}

// ProgressCallback is called when ranking progress occurs.
type ProgressCallback func(event ProgressEvent)

// Annotator is the qualitative annotation boundary. Implementations never
// fail the ranking request; they degrade to fallback annotations.
type Annotator interface {
	Annotate(ctx context.Context, jobText string, candidates []annotate.Input) *annotate.Result
}

// Runner executes ranking requests. One Runner is safe for concurrent use:
// every run builds its own candidate set, seen-fingerprint set, and score
// arrays, and the collaborators are stateless calls from the run's view.
type Runner struct {
	store            store.Fetcher
	embedder         llm.Embedder
	annotator        Annotator
	logger           *zap.Logger
	embedConcurrency int
	annotateTimeout  time.Duration
}

// NewRunner wires a Runner. A nil logger falls back to a no-op logger;
// non-positive concurrency falls back to 4 and a non-positive timeout to 60s.
func NewRunner(fetcher store.Fetcher, embedder llm.Embedder, annotator Annotator, logger *zap.Logger, embedConcurrency int, annotateTimeout time.Duration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if embedConcurrency <= 0 {
		embedConcurrency = 4
	}
	if annotateTimeout <= 0 {
		annotateTimeout = 60 * time.Second
	}
	return &Runner{
		store:            fetcher,
		embedder:         embedder,
		annotator:        annotator,
		logger:           logger,
		embedConcurrency: embedConcurrency,
		annotateTimeout:  annotateTimeout,
	}
}

// Options configures one ranking run.
type Options struct {
	JobDescription string
	// ResumeIDs empty means "use every stored resume".
	ResumeIDs []string
	// OnQuick, when set, receives the provisional semantic-only ranking as
	// soon as it is available. The callback owns its slice; the final list is
	// computed independently.
	OnQuick func(ranked []types.Candidate)
	// OnProgress, when set, receives phase transitions.
	OnProgress ProgressCallback
}

// Result is the terminal output of a ranking run.
type Result struct {
	Ranked      []types.Candidate
	JobAnalysis types.JobAnalysis
}

// Run executes the full two-phase pipeline. Fetch and embedding failures are
// fatal for the request; annotation failures degrade to fallback annotations
// and the run still reaches Ranked.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}

	emit := func(phase Phase, format string, args ...any) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Phase: phase, Message: fmt.Sprintf(format, args...)})
		}
	}

	// FetchingCandidates: the only phase whose failure surfaces to the caller.
	emit(PhaseFetching, "resolving %d resume ids", len(opts.ResumeIDs))
	resumes, err := r.store.FetchResumes(ctx, opts.ResumeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}
	if len(opts.ResumeIDs) > 0 && len(resumes) < len(opts.ResumeIDs) {
		r.logger.Warn("some resume ids did not resolve",
			zap.Int("requested", len(opts.ResumeIDs)),
			zap.Int("resolved", len(resumes)))
	}
	if len(resumes) == 0 {
		// Valid outcome, not an error; the caller decides how to present it.
		emit(PhaseRanked, "no candidates resolved")
		return &Result{Ranked: []types.Candidate{}, JobAnalysis: emptyAnalysis()}, nil
	}

	candidates := make([]types.Candidate, len(resumes))
	for i, res := range resumes {
		candidates[i] = types.Candidate{ID: res.ID, Filename: res.Filename, RawText: res.RawText}
	}

	// Deduplicating: single pass over the store-lookup order, before any
	// parallel dispatch, so marking is reproducible.
	emit(PhaseDedupe, "fingerprinting %d candidates", len(candidates))
	candidates = dedupe.MarkDuplicates(candidates)

	// SemanticScoring: one job embedding plus a bounded concurrent fan-out
	// over candidate embeddings, reassembled by index.
	emit(PhaseSemantic, "embedding job description and %d candidates", len(candidates))
	jobVec, err := r.embedder.Embed(ctx, opts.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("embedding job description: %w", err)
	}

	vectors := make([][]float64, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.embedConcurrency)
	for i := range candidates {
		g.Go(func() error {
			// Empty resume text has no direction; score it 0 without a
			// provider round-trip.
			if strings.TrimSpace(candidates[i].RawText) == "" {
				return nil
			}
			vec, err := r.embedder.Embed(gCtx, candidates[i].RawText)
			if err != nil {
				return fmt.Errorf("embedding candidate %s: %w", candidates[i].ID, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	// A single failed embedding fails the whole request: a partially scored
	// leaderboard is worse than a clean error.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].SemanticScore = scoring.SemanticScore(jobVec, vectors[i])
	}

	// QuickResultReady: a provisional, semantic-only ranking on a copy of the
	// batch. A valid complete response for latency-sensitive callers.
	if opts.OnQuick != nil {
		quick := make([]types.Candidate, len(candidates))
		copy(quick, candidates)
		opts.OnQuick(ranking.RankBySemantic(quick))
		emit(PhaseQuickResult, "quick ranking ready for %d candidates", len(quick))
	}

	// Annotating: one batched call under a bounded timeout. Failure never
	// aborts the run; the annotator degrades to fallback annotations.
	emit(PhaseAnnotating, "annotating %d candidates", len(candidates))
	inputs := make([]annotate.Input, len(candidates))
	for i, c := range candidates {
		inputs[i] = annotate.Input{ID: c.ID, Text: c.RawText}
	}

	annotateCtx, cancel := context.WithTimeout(ctx, r.annotateTimeout)
	annotation := r.annotator.Annotate(annotateCtx, opts.JobDescription, inputs)
	cancel()
	if annotation.Degraded {
		r.logger.Warn("annotation degraded to fallback, ranking is semantic-only",
			zap.Int("candidates", len(candidates)))
	}

	for i := range candidates {
		ann := annotation.PerCandidate[candidates[i].ID]
		candidates[i].Qualitative = &ann
	}

	// Fusing: merge the experience bonus into final scores and re-sort.
	emit(PhaseFusing, "fusing scores for %d candidates", len(candidates))
	ranked := ranking.Rank(candidates, annotation.JobAnalysis)

	emit(PhaseRanked, "ranked %d candidates", len(ranked))
	return &Result{Ranked: ranked, JobAnalysis: annotation.JobAnalysis}, nil
}

func emptyAnalysis() types.JobAnalysis {
	return types.JobAnalysis{
		MustHaveSkills:   []string{},
		GoodToHaveSkills: []string{},
		SoftSkills:       []string{},
	}
}
