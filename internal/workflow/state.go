// Package workflow defines the state threaded through the resume analysis
// pipeline: the state record itself, its factory, the transition table
// between pipeline steps and the progress mapping used for reporting.
package workflow

import (
	"encoding/json"
	"os"
	"time"
)

// Version identifies the workflow schema carried by every state instance.
const Version = "1.0.0"

// Message roles used in the conversation log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ResumeData holds the structured resume information produced by the
// resume intelligence stage.
type ResumeData struct {
	RawText         string            `json:"raw_text"`
	ParsedSections  map[string]string `json:"parsed_sections"`
	Skills          []string          `json:"skills"`
	ExperienceYears int               `json:"experience_years"`
	EducationLevel  string            `json:"education_level"`
	JobTitles       []string          `json:"job_titles"`
	Industries      []string          `json:"industries"`
	Certifications  []string          `json:"certifications"`
}

// JobMatch is a single job opportunity found by the job research stage.
type JobMatch struct {
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	SalaryRange        string   `json:"salary_range,omitempty"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	// MatchScore is the resume fit in [0, 1].
	MatchScore float64 `json:"match_score"`
	Source     string  `json:"source"`
	JobURL     string  `json:"job_url,omitempty"`
	PostedDate string  `json:"posted_date,omitempty"`
}

// ATSScore is the ATS compatibility assessment for one matched job.
// All sub-scores are in [0, 100].
type ATSScore struct {
	JobTitle        string             `json:"job_title"`
	OverallScore    int                `json:"overall_score"`
	KeywordScore    int                `json:"keyword_score"`
	FormatScore     int                `json:"format_score"`
	StructureScore  int                `json:"structure_score"`
	Recommendations []string           `json:"recommendations"`
	MissingKeywords []string           `json:"missing_keywords"`
	KeywordDensity  map[string]float64 `json:"keyword_density"`
}

// ResumeEnhancement collects the concrete additions the advisory stage
// suggests for the resume.
type ResumeEnhancement struct {
	MissingSkillsToAdd      []string            `json:"missing_skills_to_add"`
	ExperienceBulletsToAdd  []string            `json:"experience_bullets_to_add"`
	KeywordsToIncorporate   []string            `json:"keywords_to_incorporate"`
	TechnicalToolsToMention []string            `json:"technical_tools_to_mention"`
	CertificationsToPursue  []string            `json:"certifications_to_pursue"`
	ActionVerbsSuggestions  []string            `json:"action_verbs_suggestions"`
	QuantifiableAchievements []string           `json:"quantifiable_achievements"`
	SectionImprovements     map[string][]string `json:"section_improvements"`
}

// Message is one entry of the append-only conversation log.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Target carries the optional targeting preferences supplied with an
// analysis request.
type Target struct {
	JobTitle        string
	Industry        string
	Location        string
	ExperienceLevel string
}

// State is the record threaded through all pipeline stages. One instance is
// created per analysis request and owned exclusively by the pipeline runner
// for the duration of the run. List fields are always initialized and never
// nil; optional scalars stay nil until the corresponding stage completes.
type State struct {
	Messages []Message `json:"messages"`

	// Input, set once at creation.
	UploadedFilePath string `json:"uploaded_file_path"`
	TargetJobTitle   string `json:"target_job_title,omitempty"`
	TargetIndustry   string `json:"target_industry,omitempty"`
	TargetLocation   string `json:"target_location,omitempty"`
	ExperienceLevel  string `json:"experience_level,omitempty"`

	// Resume intelligence outputs.
	ResumeData        *ResumeData `json:"resume_data,omitempty"`
	ParsingErrors     []string    `json:"parsing_errors"`
	FileFormat        *string     `json:"file_format,omitempty"`
	ParsingConfidence *float64    `json:"parsing_confidence,omitempty"`

	// Job research outputs.
	MatchingJobs    []*JobMatch `json:"matching_jobs"`
	JobSearchErrors []string    `json:"job_search_errors"`
	SearchQueryUsed *string     `json:"search_query_used,omitempty"`
	TotalJobsFound  int         `json:"total_jobs_found"`

	// ATS scoring outputs.
	ATSScores       []*ATSScore `json:"ats_scores"`
	AverageATSScore *float64    `json:"average_ats_score,omitempty"`
	BestATSMatch    *string     `json:"best_ats_match,omitempty"`

	// Advisory outputs.
	ImprovementRecommendations []string           `json:"improvement_recommendations"`
	ResumeEnhancements         *ResumeEnhancement `json:"resume_enhancements,omitempty"`
	PersonalizedTips           []string           `json:"personalized_tips"`
	PriorityImprovements       []string           `json:"priority_improvements"`

	// Control and bookkeeping.
	CurrentStep           Step     `json:"current_step"`
	Errors                []string `json:"errors"`
	Warnings              []string `json:"warnings"`
	IsComplete            bool     `json:"is_complete"`
	ProcessingTimeSeconds *float64 `json:"processing_time_seconds,omitempty"`
	WorkflowVersion       string   `json:"workflow_version"`
	TimestampStarted      string   `json:"timestamp_started"`
	TimestampCompleted    *string  `json:"timestamp_completed,omitempty"`
	UserID                *string  `json:"user_id,omitempty"`
}

// New creates a fresh state for one analysis request. All collections are
// allocated per call so two states never share backing storage. The file
// path is not validated here; that happens right before extraction.
func New(filePath string, target Target) *State {
	return &State{
		Messages: []Message{},

		UploadedFilePath: filePath,
		TargetJobTitle:   target.JobTitle,
		TargetIndustry:   target.Industry,
		TargetLocation:   target.Location,
		ExperienceLevel:  target.ExperienceLevel,

		ParsingErrors: []string{},

		MatchingJobs:    []*JobMatch{},
		JobSearchErrors: []string{},

		ATSScores: []*ATSScore{},

		ImprovementRecommendations: []string{},
		PersonalizedTips:           []string{},
		PriorityImprovements:       []string{},

		CurrentStep:      StepInitialized,
		Errors:           []string{},
		Warnings:         []string{},
		WorkflowVersion:  Version,
		TimestampStarted: time.Now().Format(time.RFC3339),
	}
}

// AppendMessage adds one entry to the conversation log. The log is
// append-only; entries are never replaced or reordered.
func (s *State) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// RecordError appends a message to the global error list.
func (s *State) RecordError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// RecordWarning appends a non-fatal advisory message. Warnings never change
// the current step.
func (s *State) RecordWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// DumpToTmpFile serializes the full state to a temporary JSON file and
// returns its name.
func (s *State) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resume_analysis_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}
