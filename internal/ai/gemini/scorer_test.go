package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/careertoolkit/resume-analyzer/internal/workflow"
	"go.uber.org/zap"
)

func TestScorerScore(t *testing.T) {
	stub := &stubGenerator{response: `{
		"overall_score": 82,
		"keyword_score": 70,
		"format_score": 95,
		"structure_score": 88,
		"match_score": 0.74,
		"recommendations": ["add terraform to skills"],
		"missing_keywords": ["terraform", "ansible"],
		"keyword_density": {"go": 0.12, "kubernetes": 0.05}
	}`}

	scorer := NewScorer(stub, zap.NewNop(), 0)
	resume := &workflow.ResumeData{RawText: "text", Skills: []string{"Go"}}
	job := &workflow.JobMatch{Title: "Platform Engineer", Company: "Acme"}

	result, err := scorer.Score(context.Background(), resume, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score.JobTitle != "Platform Engineer" {
		t.Errorf("score must reference the job title, got %q", result.Score.JobTitle)
	}
	if result.Score.OverallScore != 82 || result.Score.KeywordScore != 70 {
		t.Errorf("unexpected scores: %+v", result.Score)
	}
	if result.MatchScore != 0.74 {
		t.Errorf("unexpected match score: %v", result.MatchScore)
	}
	if len(result.Score.MissingKeywords) != 2 {
		t.Errorf("unexpected missing keywords: %v", result.Score.MissingKeywords)
	}
	if result.Score.KeywordDensity["go"] != 0.12 {
		t.Errorf("unexpected keyword density: %v", result.Score.KeywordDensity)
	}
	if result.Raw == "" {
		t.Error("expected raw response to be retained")
	}

	if !strings.Contains(stub.lastPrompt, "Platform Engineer") {
		t.Error("expected job payload in prompt")
	}
}

func TestScorerClampsOutOfRangeScores(t *testing.T) {
	stub := &stubGenerator{response: `{
		"overall_score": 140,
		"keyword_score": -5,
		"format_score": "90",
		"structure_score": 88.6,
		"match_score": 1.9
	}`}

	scorer := NewScorer(stub, zap.NewNop(), 0)
	result, err := scorer.Score(context.Background(), &workflow.ResumeData{RawText: "x"}, &workflow.JobMatch{Title: "SRE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score.OverallScore != 100 {
		t.Errorf("expected overall clamped to 100, got %d", result.Score.OverallScore)
	}
	if result.Score.KeywordScore != 0 {
		t.Errorf("expected keyword clamped to 0, got %d", result.Score.KeywordScore)
	}
	if result.Score.FormatScore != 90 {
		t.Errorf("expected string score coerced to 90, got %d", result.Score.FormatScore)
	}
	if result.Score.StructureScore != 89 {
		t.Errorf("expected fractional score rounded to 89, got %d", result.Score.StructureScore)
	}
	if result.MatchScore != 1 {
		t.Errorf("expected match score clamped to 1, got %v", result.MatchScore)
	}
}

func TestScorerRequiresInputs(t *testing.T) {
	scorer := NewScorer(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := scorer.Score(context.Background(), nil, &workflow.JobMatch{}); err == nil {
		t.Fatal("expected error for missing resume")
	}
	if _, err := scorer.Score(context.Background(), &workflow.ResumeData{}, nil); err == nil {
		t.Fatal("expected error for missing job")
	}
}
