package search

import "strings"

// BuildQuery formats a job search query from a title and an optional
// location. Remote (or unset) locations turn into a remote-jobs query.
func BuildQuery(jobTitle, location string) string {
	jobTitle = strings.TrimSpace(jobTitle)
	location = strings.TrimSpace(location)

	if location != "" && !strings.EqualFold(location, "remote") {
		return jobTitle + " jobs in " + location
	}
	return jobTitle + " remote jobs"
}
