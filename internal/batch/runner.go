package batch

import (
	"context"
	"time"

	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"github.com/GriffinCanCode/errprop/internal/shared/id"
	"go.uber.org/zap"
)

// Result is the outcome of one job.
type Result struct {
	ID      id.JobID             `json:"id"`
	Name    string               `json:"name"`
	Outcome *uncertainty.Outcome `json:"outcome,omitempty"`
	Error   string               `json:"error,omitempty"`
	Kind    string               `json:"kind,omitempty"`
	Elapsed time.Duration        `json:"elapsed_ns"`
}

// OK reports whether the job produced an outcome.
func (r Result) OK() bool {
	return r.Error == ""
}

// Runner evaluates jobs with a shared calculator.
type Runner struct {
	calc   *uncertainty.Calculator
	logger *zap.Logger
}

// NewRunner creates a runner
func NewRunner(calc *uncertainty.Calculator, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{calc: calc, logger: logger}
}

// Run evaluates jobs in order. A failing job is recorded in its Result and
// does not stop the batch; a cancelled context does.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		res := Result{ID: id.NewJobID(), Name: job.Name}
		out, err := r.calc.Calculate(ctx, uncertainty.Input{
			Formula: job.Formula,
			Params:  job.Params,
			Vals:    job.Vals,
		})
		res.Elapsed = time.Since(start)

		if err != nil {
			res.Error = err.Error()
			res.Kind = uncertainty.Kind(err)
			r.logger.Warn("Job failed",
				zap.String("job", job.Name),
				zap.String("kind", res.Kind),
				zap.Error(err))
		} else {
			res.Outcome = out
			r.logger.Debug("Job complete",
				zap.String("job", job.Name),
				zap.String("result", out.Result),
				zap.Duration("elapsed", res.Elapsed))
		}
		results = append(results, res)
	}
	return results, nil
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
