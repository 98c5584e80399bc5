package stages

import (
	"context"
	"fmt"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

// parseStage runs the resume intelligence phase: file validation, text
// extraction and LLM-backed structuring.
type parseStage struct{}

func (parseStage) Name() string { return "resume_intelligence" }

func (parseStage) Entry() workflow.Step { return workflow.StepParsingResume }

func (parseStage) Done() workflow.Step { return workflow.StepResumeParsed }

func (parseStage) Run(ctx context.Context, deps Deps, state *workflow.State) error {
	state.AppendMessage(workflow.RoleUser,
		fmt.Sprintf("analyze resume file %s", state.UploadedFilePath))

	// Input errors halt before any content is read.
	valid, reason := deps.Extractor.Validate(state.UploadedFilePath, deps.MaxFileSizeMB)
	if !valid {
		return fmt.Errorf("file validation: %s", reason)
	}

	extracted, err := deps.Extractor.Extract(state.UploadedFilePath)
	if err != nil {
		state.ParsingErrors = append(state.ParsingErrors, err.Error())
		return fmt.Errorf("extracting text: %w", err)
	}

	target := workflow.Target{
		JobTitle:        state.TargetJobTitle,
		Industry:        state.TargetIndustry,
		Location:        state.TargetLocation,
		ExperienceLevel: state.ExperienceLevel,
	}

	result, err := deps.Parser.Parse(ctx, extracted.Text, extracted.Format, target)
	if err != nil {
		state.ParsingErrors = append(state.ParsingErrors, err.Error())
		return fmt.Errorf("parsing resume: %w", err)
	}

	// Partial success: structured data and parsing errors live side by side.
	state.ResumeData = result.Data
	state.FileFormat = &extracted.Format
	confidence := result.Confidence
	state.ParsingConfidence = &confidence
	state.ParsingErrors = append(state.ParsingErrors, result.Errors...)

	if confidence < deps.minConfidence() {
		warning := fmt.Sprintf("low parsing confidence: %.2f", confidence)
		state.RecordWarning(warning)
		deps.Logger.Warn("low parsing confidence",
			zap.Float64("confidence", confidence),
			zap.Float64("threshold", deps.minConfidence()),
		)
	}

	state.AppendMessage(workflow.RoleAssistant,
		fmt.Sprintf("parsed %s resume: %d skills, %d previous titles, confidence %.2f",
			extracted.Format, len(result.Data.Skills), len(result.Data.JobTitles), confidence))

	deps.Logger.Info("resume parsed",
		zap.String("format", extracted.Format),
		zap.Int("skills", len(result.Data.Skills)),
		zap.Float64("confidence", confidence),
		zap.Int("parsing_errors", len(state.ParsingErrors)),
	)

	return nil
}
