package workflow

// progress maps each step to a user-facing completion percentage. Values
// are monotonically non-decreasing along any valid path through the state
// machine.
var progress = map[Step]float64{
	StepInitialized:      0,
	StepParsingResume:    10,
	StepResumeParsed:     25,
	StepSearchingJobs:    40,
	StepJobsFound:        60,
	StepScoringATS:       75,
	StepATSScored:        85,
	StepGeneratingAdvice: 95,
	StepCompleted:        100,
	StepError:            0,
}

// Progress returns the completion percentage for a step. Unrecognized
// steps map to 0.
func Progress(step Step) float64 {
	return progress[step]
}
