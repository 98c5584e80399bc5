package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/careertoolkit/resume-analyzer/internal/search"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

const sourceTavily = "tavily"

// searchStage runs the job market research phase.
type searchStage struct{}

func (searchStage) Name() string { return "job_research" }

func (searchStage) Entry() workflow.Step { return workflow.StepSearchingJobs }

func (searchStage) Done() workflow.Step { return workflow.StepJobsFound }

func (searchStage) Run(_ context.Context, deps Deps, state *workflow.State) error {
	title := searchTitle(state)
	if title == "" {
		// Nothing to search for; an empty result list is not an error, but
		// the reason is recorded for the report.
		state.JobSearchErrors = append(state.JobSearchErrors,
			"no target job title and no previous titles parsed from resume")
		state.AppendMessage(workflow.RoleAssistant, "skipped job search: no job title available")
		return nil
	}

	query := search.BuildQuery(title, state.TargetLocation)
	state.SearchQueryUsed = &query
	state.AppendMessage(workflow.RoleUser, fmt.Sprintf("search jobs: %s", query))

	deps.Logger.Info("starting the search", zap.String("query", query))

	results, err := deps.Searcher.Search(query, deps.maxJobs())
	if err != nil {
		// Provider failures are collected, not fatal; scoring proceeds with
		// whatever was found.
		state.JobSearchErrors = append(state.JobSearchErrors, fmt.Sprintf("search: %v", err))
		deps.Logger.Warn("job search failed", zap.Error(err))
		return nil
	}

	state.TotalJobsFound = len(results)

	for _, result := range results {
		if len(state.MatchingJobs) >= deps.maxJobs() {
			break
		}
		state.MatchingJobs = append(state.MatchingJobs, toJobMatch(result))
	}

	state.AppendMessage(workflow.RoleAssistant,
		fmt.Sprintf("found %d jobs, kept %d for scoring", state.TotalJobsFound, len(state.MatchingJobs)))

	deps.Logger.Info("getting jobs",
		zap.Int("found", state.TotalJobsFound),
		zap.Int("kept", len(state.MatchingJobs)),
	)

	return nil
}

// searchTitle picks the job title to search for: explicit target first,
// then the most recent title parsed from the resume.
func searchTitle(state *workflow.State) string {
	if title := strings.TrimSpace(state.TargetJobTitle); title != "" {
		return title
	}
	if state.ResumeData != nil && len(state.ResumeData.JobTitles) > 0 {
		return strings.TrimSpace(state.ResumeData.JobTitles[0])
	}
	return ""
}

// toJobMatch maps one raw search hit into the job match shape. The initial
// match score is the search relevance; the scoring stage replaces it with
// the model's resume-fit score.
func toJobMatch(result *search.Result) *workflow.JobMatch {
	title := strings.TrimSpace(result.Title)
	company := ""
	if idx := strings.LastIndex(title, " at "); idx != -1 {
		company = strings.TrimSpace(title[idx+len(" at "):])
		title = strings.TrimSpace(title[:idx])
	}

	score := result.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &workflow.JobMatch{
		Title:           title,
		Company:         company,
		Description:     result.Content,
		RequiredSkills:  []string{},
		PreferredSkills: []string{},
		MatchScore:      score,
		Source:          sourceTavily,
		JobURL:          result.URL,
		PostedDate:      result.PublishedDate,
	}
}
