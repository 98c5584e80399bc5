package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/careertoolkit/resume-analyzer/internal/ai"
	"github.com/careertoolkit/resume-analyzer/internal/utils"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

//go:embed prompts/advise.md
var advisePromptTemplate string

// Advisor produces resume improvement advice from the accumulated analysis.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Advise(ctx context.Context, resume *workflow.ResumeData, jobs []*workflow.JobMatch, scores []*workflow.ATSScore) (*ai.Advice, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume data is required")
	}

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	jobsJSON, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal jobs payload: %w", err)
	}

	scoresJSON, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scores payload: %w", err)
	}

	prompt := strings.ReplaceAll(advisePromptTemplate, "{{RESUME_JSON}}", string(resumeJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOBS_JSON}}", string(jobsJSON))
	prompt = strings.ReplaceAll(prompt, "{{SCORES_JSON}}", string(scoresJSON))

	a.logger.Debug("gemini advise request",
		zap.Int("jobs", len(jobs)),
		zap.Int("scores", len(scores)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini advise response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	advice := &ai.Advice{
		Recommendations:      coerceStrings(data["improvement_recommendations"]),
		PersonalizedTips:     coerceStrings(data["personalized_tips"]),
		PriorityImprovements: coerceStrings(data["priority_improvements"]),
	}

	if enhancements, ok := data["resume_enhancements"].(map[string]any); ok {
		advice.Enhancements = &workflow.ResumeEnhancement{
			MissingSkillsToAdd:       coerceStrings(enhancements["missing_skills_to_add"]),
			ExperienceBulletsToAdd:   coerceStrings(enhancements["experience_bullets_to_add"]),
			KeywordsToIncorporate:    coerceStrings(enhancements["keywords_to_incorporate"]),
			TechnicalToolsToMention:  coerceStrings(enhancements["technical_tools_to_mention"]),
			CertificationsToPursue:   coerceStrings(enhancements["certifications_to_pursue"]),
			ActionVerbsSuggestions:   coerceStrings(enhancements["action_verbs_suggestions"]),
			QuantifiableAchievements: coerceStrings(enhancements["quantifiable_achievements"]),
			SectionImprovements:      coerceStringsMap(enhancements["section_improvements"]),
		}
	}

	return advice, nil
}
