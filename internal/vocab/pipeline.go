package vocab

import (
	"context"
	"log/slog"
	"time"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// report from previous steps.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows steps to carry configuration state
//  2. It provides a Name() method for logging and debugging
//  3. It's more extensible for future steps
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the report to modify. Any returned error is fatal
	// for the group's run: expected-empty outcomes (a taxon without a
	// usable example, an id missing from enrichment) are handled inside
	// the steps and never surface as errors.
	Do(ctx context.Context, report *model.GroupReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps for one group.
// It maintains a list of steps and executes them in order. A step error
// always stops the pipeline; fatal errors are never suppressed here or in
// any step below.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence against the report.
// It checks context cancellation between steps; steps handle their own
// blocking behavior internally. Returns the first error encountered.
func (p *Pipeline) Execute(ctx context.Context, report *model.GroupReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"group", report.Group.Label,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"group", report.Group.Label,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"group", report.Group.Label,
				"error", err,
			)
			return err
		}

		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}

	report.FinishedAt = time.Now()
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// API bundles the three step dependencies. An *inat.Client satisfies it.
type API interface {
	CountsFetcher
	TaxaLookup
	ObservationSearcher
}

// DefaultPipeline creates the standard three-step pipeline for building one
// group's vocabulary: merge, enrich, assemble.
//
// Design decision: We provide a default pipeline because the CLI always
// wants all three steps in this order; tests compose steps individually.
func DefaultPipeline(api API, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewMergeStep(api, WithMergeLogger(p.logger)),
		NewEnrichStep(api, WithEnrichLogger(p.logger)),
		NewAssembleStep(NewExampleSelector(api, WithSelectorLogger(p.logger)), WithAssembleLogger(p.logger)),
	)
	return p
}
