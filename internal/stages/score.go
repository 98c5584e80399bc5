package stages

import (
	"context"
	"fmt"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// scoreStage runs the ATS scoring phase. Jobs are scored concurrently:
// every goroutine reads an immutable snapshot (the parsed resume plus its
// own job) and writes into its own slot; aggregation happens only after
// the whole group has finished.
type scoreStage struct{}

func (scoreStage) Name() string { return "ats_scoring" }

func (scoreStage) Entry() workflow.Step { return workflow.StepScoringATS }

func (scoreStage) Done() workflow.Step { return workflow.StepATSScored }

func (scoreStage) Run(ctx context.Context, deps Deps, state *workflow.State) error {
	if len(state.MatchingJobs) == 0 {
		state.AppendMessage(workflow.RoleAssistant, "skipped ATS scoring: no matched jobs")
		return nil
	}
	if state.ResumeData == nil {
		return fmt.Errorf("resume data is required for scoring")
	}

	resume := state.ResumeData
	jobs := state.MatchingJobs

	scores := make([]*workflow.ATSScore, len(jobs))
	matchScores := make([]float64, len(jobs))
	failures := make([]string, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(deps.scoreConcurrency())

	for i, job := range jobs {
		group.Go(func() error {
			result, err := deps.Scorer.Score(groupCtx, resume, job)
			if err != nil {
				failures[i] = fmt.Sprintf("scoring %q: %v", job.Title, err)
				return nil
			}
			scores[i] = result.Score
			matchScores[i] = result.MatchScore
			return nil
		})
	}

	// Goroutines never return errors; Wait is only a barrier here.
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	scored := 0
	total := 0
	best := ""
	bestScore := -1

	for i, score := range scores {
		if failures[i] != "" {
			state.RecordError(failures[i])
			continue
		}
		if score == nil {
			continue
		}

		state.ATSScores = append(state.ATSScores, score)
		jobs[i].MatchScore = matchScores[i]

		scored++
		total += score.OverallScore
		if score.OverallScore > bestScore {
			bestScore = score.OverallScore
			best = score.JobTitle
		}
	}

	if scored == 0 {
		return fmt.Errorf("all %d job scorings failed", len(jobs))
	}

	average := float64(total) / float64(scored)
	state.AverageATSScore = &average
	state.BestATSMatch = &best

	state.AppendMessage(workflow.RoleAssistant,
		fmt.Sprintf("scored %d/%d jobs, average ATS %.1f, best match %q", scored, len(jobs), average, best))

	deps.Logger.Info("ats scoring completed",
		zap.Int("scored", scored),
		zap.Int("jobs", len(jobs)),
		zap.Float64("average_score", average),
		zap.String("best_match", best),
	)

	return nil
}
