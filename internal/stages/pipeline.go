package stages

import (
	"context"
	"fmt"
	"time"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

// Pipeline drives a workflow state through all analysis stages in order.
type Pipeline struct {
	deps   Deps
	stages []Stage
}

func NewPipeline(deps Deps) *Pipeline {
	return &Pipeline{
		deps: deps,
		stages: []Stage{
			parseStage{},
			searchStage{},
			scoreStage{},
			adviseStage{},
		},
	}
}

// Run executes every stage against the state. A stage failure is recorded
// on the state and the workflow is closed out through the error step, so
// the state always ends at the completed step. The returned error is
// non-nil only for internal invariant violations.
func (p *Pipeline) Run(ctx context.Context, state *workflow.State) error {
	start := time.Now()

	for _, stage := range p.stages {
		if err := p.step(state, stage.Entry()); err != nil {
			return err
		}

		if err := stage.Run(ctx, p.deps, state); err != nil {
			state.RecordError(fmt.Sprintf("%s: %v", stage.Name(), err))
			p.deps.Logger.Error("stage failed",
				zap.String("stage", stage.Name()),
				zap.Error(err),
			)
			return p.finishDegraded(state, start)
		}

		if err := p.step(state, stage.Done()); err != nil {
			return err
		}
	}

	state.IsComplete = true
	p.close(state, start)

	p.deps.Logger.Info("analysis complete",
		zap.Int("jobs", state.TotalJobsFound),
		zap.Int("scores", len(state.ATSScores)),
		zap.Float64("seconds", *state.ProcessingTimeSeconds),
	)

	return nil
}

func (p *Pipeline) step(state *workflow.State, to workflow.Step) error {
	if err := state.Transition(to); err != nil {
		return err
	}
	p.deps.Logger.Info("pipeline step",
		zap.String("step", string(to)),
		zap.Float64("progress", workflow.Progress(to)),
	)
	return nil
}

// finishDegraded closes out a failed workflow. IsComplete stays false.
func (p *Pipeline) finishDegraded(state *workflow.State, start time.Time) error {
	if err := p.step(state, workflow.StepError); err != nil {
		return err
	}
	if err := p.step(state, workflow.StepCompleted); err != nil {
		return err
	}
	p.close(state, start)
	return nil
}

func (p *Pipeline) close(state *workflow.State, start time.Time) {
	elapsed := time.Since(start).Seconds()
	state.ProcessingTimeSeconds = &elapsed
	completed := time.Now().Format(time.RFC3339)
	state.TimestampCompleted = &completed
}
