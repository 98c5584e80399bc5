// Package ai defines the contracts between the pipeline stages and the
// language-model collaborators. Providers live in subpackages.
package ai

import (
	"context"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
)

// Generator produces a text response for a prompt. Implementations own
// their retry and timeout behavior.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ParseResult is the outcome of parsing one resume. Data and Errors may
// both be populated on partial success.
type ParseResult struct {
	Data       *workflow.ResumeData
	Confidence float64
	Errors     []string
}

// ScoreResult is the ATS assessment of a resume against one job.
type ScoreResult struct {
	Score *workflow.ATSScore
	// MatchScore is the resume fit for the job in [0, 1].
	MatchScore float64
	Raw        string
}

// Advice is the advisory stage output.
type Advice struct {
	Recommendations      []string
	Enhancements         *workflow.ResumeEnhancement
	PersonalizedTips     []string
	PriorityImprovements []string
}

// ResumeParser turns extracted resume text into structured data.
type ResumeParser interface {
	Parse(ctx context.Context, text, format string, target workflow.Target) (*ParseResult, error)
}

// Scorer evaluates a resume against a single job.
type Scorer interface {
	Score(ctx context.Context, resume *workflow.ResumeData, job *workflow.JobMatch) (*ScoreResult, error)
}

// Advisor produces improvement advice from the accumulated analysis.
type Advisor interface {
	Advise(ctx context.Context, resume *workflow.ResumeData, jobs []*workflow.JobMatch, scores []*workflow.ATSScore) (*Advice, error)
}
