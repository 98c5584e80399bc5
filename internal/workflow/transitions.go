package workflow

import "fmt"

// Step is the named position of the workflow state machine.
type Step string

const (
	StepInitialized      Step = "initialized"
	StepParsingResume    Step = "parsing_resume"
	StepResumeParsed     Step = "resume_parsed"
	StepSearchingJobs    Step = "searching_jobs"
	StepJobsFound        Step = "jobs_found"
	StepScoringATS       Step = "scoring_ats"
	StepATSScored        Step = "ats_scored"
	StepGeneratingAdvice Step = "generating_advice"
	StepCompleted        Step = "completed"
	StepError            Step = "error"
	// StepRetry is a valid target from StepError but has no outgoing
	// transitions of its own; resuming a run means creating a new state.
	StepRetry Step = "retry"
)

// transitions maps each step to the set of steps it may advance to. Built
// once; never mutated after init. Every productive step has an escape edge
// to StepError, and StepError may finish the run as degraded via
// StepCompleted. StepCompleted is terminal.
var transitions = map[Step]map[Step]struct{}{
	StepInitialized:      stepSet(StepParsingResume),
	StepParsingResume:    stepSet(StepResumeParsed, StepError),
	StepResumeParsed:     stepSet(StepSearchingJobs),
	StepSearchingJobs:    stepSet(StepJobsFound, StepError),
	StepJobsFound:        stepSet(StepScoringATS),
	StepScoringATS:       stepSet(StepATSScored, StepError),
	StepATSScored:        stepSet(StepGeneratingAdvice),
	StepGeneratingAdvice: stepSet(StepCompleted, StepError),
	StepError:            stepSet(StepRetry, StepCompleted),
	StepCompleted:        stepSet(),
}

func stepSet(steps ...Step) map[Step]struct{} {
	set := make(map[Step]struct{}, len(steps))
	for _, s := range steps {
		set[s] = struct{}{}
	}
	return set
}

// IsValidTransition reports whether the state machine permits moving from
// one step to another. Unknown steps have no valid transitions. The check
// is advisory only; it never mutates anything.
func IsValidTransition(from, to Step) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Transition moves the state to the given step after validating the edge.
// An invalid transition leaves the state untouched and is a caller bug.
func (s *State) Transition(to Step) error {
	if !IsValidTransition(s.CurrentStep, to) {
		return fmt.Errorf("invalid transition from %q to %q", s.CurrentStep, to)
	}
	s.CurrentStep = to
	return nil
}
