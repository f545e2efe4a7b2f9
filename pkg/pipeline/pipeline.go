// Package pipeline runs an ordered list of steps against one shared stash
// for a single inbound operation. The composer is a straight-line
// synchronous fold: a step either returns a value (continue) or an error,
// which aborts the remaining steps and propagates to the caller unmodified.
package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/kernelworx/psm/pkg/logger"
)

var tracer = otel.Tracer("psm/pkg/pipeline")

// Step is one unit of a pipeline. Steps communicate exclusively through the
// exec's stash and the datastore they were constructed with; there are no
// direct step-to-step calls.
type Step interface {
	// Name identifies the step in logs and traces.
	Name() string

	// Run executes the step. The returned value becomes the pipeline result
	// if this is the last step. A non-nil error aborts the pipeline.
	Run(ctx context.Context, exec *Exec) (any, error)
}

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, exec *Exec) (any, error)
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Run(ctx context.Context, exec *Exec) (any, error) {
	return s.Fn(ctx, exec)
}

// Exec carries the per-invocation state: the verified caller subject and the
// mutable stash. It is scoped to exactly one pipeline run and discarded on
// completion.
type Exec struct {
	// CallerAccountID is the verified subject id of the caller. Steps never
	// re-validate it.
	CallerAccountID string

	// IsAdmin mirrors the admin claim on the caller's token. The token
	// claim, not any stored flag, is authoritative.
	IsAdmin bool

	stash map[string]any
}

// NewExec returns an Exec for one operation invocation.
func NewExec(callerAccountID string) *Exec {
	return &Exec{
		CallerAccountID: callerAccountID,
		stash:           make(map[string]any),
	}
}

// Set stores a stash value. Writing the same key twice is legal; the last
// write wins.
func (e *Exec) Set(stashKey string, value any) {
	e.stash[stashKey] = value
}

// Get reads a stash value. The second return reports presence explicitly; an
// absent key never defaults to a type-incorrect value.
func (e *Exec) Get(stashKey string) (any, bool) {
	v, ok := e.stash[stashKey]
	return v, ok
}

// Pipeline is an ordered list of steps run for one named operation.
type Pipeline struct {
	name   string
	steps  []Step
	logger logger.Logger
}

// New builds a pipeline. The step list is fixed; composition is always an
// explicit ordered list, never dynamic lookup by name.
func New(name string, log logger.Logger, steps ...Step) *Pipeline {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Pipeline{name: name, steps: steps, logger: log}
}

// Execute runs each step in declared order against the shared exec. The
// first error aborts the run and is returned untransformed; otherwise the
// last step's value is the result. Writes committed by earlier steps are
// not rolled back, so mutation steps must be ordered with the most
// foundational write last.
func (p *Pipeline) Execute(ctx context.Context, exec *Exec) (any, error) {
	ctx, span := tracer.Start(ctx, "pipeline."+p.name)
	defer span.End()

	var result any
	for _, step := range p.steps {
		v, err := step.Run(ctx, exec)
		if err != nil {
			p.logger.DebugWithContext(ctx, "pipeline step failed",
				zap.String("pipeline", p.name),
				zap.String("step", step.Name()),
				zap.Error(err),
			)
			return nil, err
		}
		result = v
	}
	return result, nil
}
