package stages

import (
	"context"
	"fmt"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

// adviseStage runs the career advisory phase.
type adviseStage struct{}

func (adviseStage) Name() string { return "career_advisory" }

func (adviseStage) Entry() workflow.Step { return workflow.StepGeneratingAdvice }

func (adviseStage) Done() workflow.Step { return workflow.StepCompleted }

func (adviseStage) Run(ctx context.Context, deps Deps, state *workflow.State) error {
	if state.ResumeData == nil {
		return fmt.Errorf("resume data is required for advice")
	}

	state.AppendMessage(workflow.RoleUser, "generate resume improvement advice")

	advice, err := deps.Advisor.Advise(ctx, state.ResumeData, state.MatchingJobs, state.ATSScores)
	if err != nil {
		return fmt.Errorf("generating advice: %w", err)
	}

	state.ImprovementRecommendations = orEmpty(advice.Recommendations)
	state.ResumeEnhancements = advice.Enhancements
	state.PersonalizedTips = orEmpty(advice.PersonalizedTips)
	state.PriorityImprovements = orEmpty(advice.PriorityImprovements)

	state.AppendMessage(workflow.RoleAssistant,
		fmt.Sprintf("generated %d recommendations, %d tips, %d priorities",
			len(state.ImprovementRecommendations), len(state.PersonalizedTips), len(state.PriorityImprovements)))

	deps.Logger.Info("advice generated",
		zap.Int("recommendations", len(state.ImprovementRecommendations)),
		zap.Int("tips", len(state.PersonalizedTips)),
		zap.Int("priorities", len(state.PriorityImprovements)),
	)

	return nil
}
