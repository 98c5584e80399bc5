package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/careertoolkit/resume-analyzer/internal/ai"
	"github.com/careertoolkit/resume-analyzer/internal/utils"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompts/parse.md
var parsePromptTemplate string

const defaultMaxLogLength = 200

// Parser extracts structured resume data from raw text via Gemini.
type Parser struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewParser(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Parser {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Parser{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (p *Parser) Parse(ctx context.Context, text, format string, target workflow.Target) (*ai.ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume text is required")
	}

	prompt := strings.ReplaceAll(parsePromptTemplate, "{{RESUME_TEXT}}", text)
	prompt = strings.ReplaceAll(prompt, "{{FILE_FORMAT}}", format)
	prompt = strings.ReplaceAll(prompt, "{{TARGET_CONTEXT}}", targetContext(target))

	p.logger.Debug("gemini parse request",
		zap.String("file_format", format),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini parse response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	resume := &workflow.ResumeData{
		RawText:         text,
		ParsedSections:  coerceStringMap(data["parsed_sections"]),
		Skills:          coerceStrings(data["skills"]),
		ExperienceYears: coerceInt(data["experience_years"]),
		EducationLevel:  coerceString(data["education_level"]),
		JobTitles:       coerceStrings(data["job_titles"]),
		Industries:      coerceStrings(data["industries"]),
		Certifications:  coerceStrings(data["certifications"]),
	}

	return &ai.ParseResult{
		Data:       resume,
		Confidence: clampUnit(coerceFloat(data["parsing_confidence"])),
		Errors:     coerceStrings(data["parsing_errors"]),
	}, nil
}

// targetContext renders the optional targeting preferences as a single
// context line for the prompt.
func targetContext(target workflow.Target) string {
	parts := make([]string, 0, 4)
	if target.JobTitle != "" {
		parts = append(parts, fmt.Sprintf("Target Job: %s", target.JobTitle))
	}
	if target.Industry != "" {
		parts = append(parts, fmt.Sprintf("Target Industry: %s", target.Industry))
	}
	if target.ExperienceLevel != "" {
		parts = append(parts, fmt.Sprintf("Experience Level: %s", target.ExperienceLevel))
	}
	if target.Location != "" {
		parts = append(parts, fmt.Sprintf("Target Location: %s", target.Location))
	}
	if len(parts) == 0 {
		return "No targeting preferences provided"
	}
	return strings.Join(parts, " | ")
}
