package workflow

import "testing"

func TestProgressValues(t *testing.T) {
	expected := map[Step]float64{
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

	for step, want := range expected {
		if got := Progress(step); got != want {
			t.Errorf("Progress(%s) = %v, want %v", step, got, want)
		}
	}
}

func TestProgressMonotonicOnSuccessPath(t *testing.T) {
	path := []Step{
		StepInitialized,
		StepParsingResume,
		StepResumeParsed,
		StepSearchingJobs,
		StepJobsFound,
		StepScoringATS,
		StepATSScored,
		StepGeneratingAdvice,
		StepCompleted,
	}

	last := float64(-1)
	for _, step := range path {
		p := Progress(step)
		if p < last {
			t.Fatalf("progress decreased at %s: %v < %v", step, p, last)
		}
		last = p
	}
	if last != 100 {
		t.Fatalf("expected success path to end at 100, got %v", last)
	}
}

func TestProgressUnknownStep(t *testing.T) {
	for _, step := range []Step{StepRetry, "bogus", ""} {
		if got := Progress(step); got != 0 {
			t.Errorf("Progress(%q) = %v, want 0", step, got)
		}
	}
}
