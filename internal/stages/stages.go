// Package stages implements the four processing stages of the resume
// analysis pipeline and the runner that drives one workflow state through
// them in order.
package stages

import (
	"context"

	"github.com/careertoolkit/resume-analyzer/internal/ai"
	"github.com/careertoolkit/resume-analyzer/internal/extract"
	"github.com/careertoolkit/resume-analyzer/internal/search"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

// Stage is a single processing phase. Entry and Done are the steps the
// stage runs under and finishes at; the runner owns all transitions.
type Stage interface {
	Name() string
	Entry() workflow.Step
	Done() workflow.Step
	Run(ctx context.Context, deps Deps, state *workflow.State) error
}

// Extractor validates resume files and extracts their text.
type Extractor interface {
	Validate(path string, maxSizeMB int) (bool, string)
	Extract(path string) (*extract.Result, error)
}

// Searcher returns raw job search results for a query.
type Searcher interface {
	Search(query string, limit int) ([]*search.Result, error)
}

// Deps aggregates the collaborators and limits shared by all stages.
type Deps struct {
	Logger    *zap.Logger
	Extractor Extractor
	Parser    ai.ResumeParser
	Searcher  Searcher
	Scorer    ai.Scorer
	Advisor   ai.Advisor

	MaxFileSizeMB    int
	MaxJobs          int
	ScoreConcurrency int

	// MinConfidence is the parsing confidence below which a warning is
	// recorded.
	MinConfidence float64
}

const (
	defaultMaxJobs          = 10
	defaultScoreConcurrency = 4
	defaultMinConfidence    = 0.5
)

func (d Deps) maxJobs() int {
	if d.MaxJobs <= 0 {
		return defaultMaxJobs
	}
	return d.MaxJobs
}

func (d Deps) scoreConcurrency() int {
	if d.ScoreConcurrency <= 0 {
		return defaultScoreConcurrency
	}
	return d.ScoreConcurrency
}

func (d Deps) minConfidence() float64 {
	if d.MinConfidence <= 0 {
		return defaultMinConfidence
	}
	return d.MinConfidence
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// FileExtractor adapts the extract package to the Extractor interface.
type FileExtractor struct{}

func (FileExtractor) Validate(path string, maxSizeMB int) (bool, string) {
	return extract.Validate(path, maxSizeMB)
}

func (FileExtractor) Extract(path string) (*extract.Result, error) {
	return extract.Extract(path)
}
