package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	_ "embed"

	"strings"

	"github.com/careertoolkit/resume-analyzer/internal/ai"
	"github.com/careertoolkit/resume-analyzer/internal/utils"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

//go:embed prompts/score.md
var scorePromptTemplate string

// Scorer evaluates ATS compatibility of a resume against one job posting.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, resume *workflow.ResumeData, job *workflow.JobMatch) (*ai.ScoreResult, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume data is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := strings.ReplaceAll(scorePromptTemplate, "{{RESUME_JSON}}", string(resumeJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", string(jobJSON))

	s.logger.Debug("gemini score request",
		zap.String("job_title", job.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini score response",
		zap.String("job_title", job.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	// Scores outside their documented bounds are a model bug; clamp at the
	// boundary so the stored state always honors its invariants.
	score := &workflow.ATSScore{
		JobTitle:        job.Title,
		OverallScore:    clampScore(coerceInt(data["overall_score"])),
		KeywordScore:    clampScore(coerceInt(data["keyword_score"])),
		FormatScore:     clampScore(coerceInt(data["format_score"])),
		StructureScore:  clampScore(coerceInt(data["structure_score"])),
		Recommendations: coerceStrings(data["recommendations"]),
		MissingKeywords: coerceStrings(data["missing_keywords"]),
		KeywordDensity:  coerceFloatMap(data["keyword_density"]),
	}

	return &ai.ScoreResult{
		Score:      score,
		MatchScore: clampUnit(coerceFloat(data["match_score"])),
		Raw:        raw,
	}, nil
}
