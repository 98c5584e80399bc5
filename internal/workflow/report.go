package workflow

import (
	"fmt"
	"strconv"
)

// ReportByCompany groups the matched jobs by company for a human-readable
// report, attaching the match score and the ATS score when one exists for
// the job title.
func (s *State) ReportByCompany() map[string][]map[string]string {
	scores := make(map[string]*ATSScore, len(s.ATSScores))
	for _, score := range s.ATSScores {
		scores[score.JobTitle] = score
	}

	report := make(map[string][]map[string]string)
	for _, job := range s.MatchingJobs {
		entry := map[string]string{
			"title":       job.Title,
			"location":    job.Location,
			"source":      job.Source,
			"match_score": strconv.FormatFloat(job.MatchScore, 'f', 2, 64),
		}
		if job.JobURL != "" {
			entry["url"] = job.JobURL
		}
		if job.SalaryRange != "" {
			entry["salary"] = job.SalaryRange
		}
		if score, ok := scores[job.Title]; ok {
			entry["ats_score"] = strconv.Itoa(score.OverallScore)
		}

		key := job.Company
		if key == "" {
			key = "unknown company"
		}
		report[key] = append(report[key], entry)
	}
	return report
}

// Summary returns a short textual summary of the run suitable for logging
// and the interactive prompt.
func (s *State) Summary() string {
	avg := "n/a"
	if s.AverageATSScore != nil {
		avg = strconv.FormatFloat(*s.AverageATSScore, 'f', 1, 64)
	}
	best := "n/a"
	if s.BestATSMatch != nil {
		best = *s.BestATSMatch
	}
	return fmt.Sprintf(
		"step=%s progress=%.0f%% jobs=%d scored=%d avg_ats=%s best_match=%q errors=%d warnings=%d",
		s.CurrentStep, Progress(s.CurrentStep), len(s.MatchingJobs), len(s.ATSScores),
		avg, best, len(s.Errors), len(s.Warnings),
	)
}
