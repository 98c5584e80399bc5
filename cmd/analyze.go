package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/careertoolkit/resume-analyzer/internal/ai"
	"github.com/careertoolkit/resume-analyzer/internal/ai/gemini"
	"github.com/careertoolkit/resume-analyzer/internal/logger"
	"github.com/careertoolkit/resume-analyzer/internal/search"
	"github.com/careertoolkit/resume-analyzer/internal/secrets"
	"github.com/careertoolkit/resume-analyzer/internal/stages"
	"github.com/careertoolkit/resume-analyzer/internal/workflow"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowSummary     = "Show summary"
	PromptReportByCompany = "Report by company"
	PromptShowAdvice      = "Show improvement advice"
	PromptReportToFile    = "Dump full report to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowSummary, PromptReportByCompany, PromptShowAdvice, PromptReportToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full resume analysis pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "path to the resume file (pdf, docx or txt)")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without the interactive prompt")
	analyzeCmd.Flags().StringP("job-title", "t", "", "target job title to search the market for")
	analyzeCmd.Flags().StringP("location", "l", "", "target job location, empty or 'remote' searches remote jobs")

	viper.BindPFlag("input.file", analyzeCmd.Flags().Lookup("file"))
	viper.BindPFlag("input.job-title", analyzeCmd.Flags().Lookup("job-title"))
	viper.BindPFlag("input.location", analyzeCmd.Flags().Lookup("location"))
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-analyzer", zap.String("version", version))

	if config == nil {
		config = &Config{}
	}
	normalizeConfig(config)

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Input.File == "" {
		logger.Fatal("resume file is required",
			zap.String("hint", "pass --file or set input.file in the configuration file"),
		)
	}

	parser, scorer, advisor, err := newAICollaborators(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building ai collaborators",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
	}

	searchKey, err := secrets.Load(secrets.Source{
		Name: "tavily api key",
		File: config.Search.APIKeyFile,
	})
	if err != nil {
		logger.Fatal("loading search api key",
			zap.Error(err),
			zap.String("hint", "set search.api-key-file or TAVILY_API_KEY_FILE"),
		)
	}

	deps := stages.Deps{
		Logger:           logger,
		Extractor:        stages.FileExtractor{},
		Parser:           parser,
		Searcher:         search.New(ctx, logger, searchKey),
		Scorer:           scorer,
		Advisor:          advisor,
		MaxFileSizeMB:    config.Limits.MaxFileSizeMB,
		MaxJobs:          config.Limits.MaxJobs,
		ScoreConcurrency: config.Limits.ScoreConcurrency,
	}

	state := workflow.New(config.Input.File, workflow.Target{
		JobTitle:        config.Input.JobTitle,
		Industry:        config.Input.Industry,
		Location:        config.Input.Location,
		ExperienceLevel: config.Input.ExperienceLevel,
	})

	if err := stages.NewPipeline(deps).Run(ctx, state); err != nil {
		logger.Fatal("running the pipeline", zap.Error(err))
	}

	fmt.Println(state.Summary())

	if cmd.Flag("auto-approve").Value.String() == "true" {
		printReport(state)
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, state, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, state *workflow.State, logger *zap.Logger) error {
	switch action {
	case PromptShowSummary:
		fmt.Println(state.Summary())
		return nil
	case PromptReportByCompany:
		return printReport(state)
	case PromptShowAdvice:
		printAdvice(state)
		return nil
	case PromptReportToFile:
		file, err := state.DumpToTmpFile()
		if err != nil {
			return err
		}
		logger.Info("report dumped", zap.String("file", file))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func printReport(state *workflow.State) error {
	report, err := json.MarshalIndent(state.ReportByCompany(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(report))
	return nil
}

func printAdvice(state *workflow.State) {
	if len(state.ImprovementRecommendations) == 0 && len(state.PersonalizedTips) == 0 {
		fmt.Println("no advice generated")
		return
	}
	for _, item := range state.PriorityImprovements {
		fmt.Printf("priority: %s\n", item)
	}
	for _, item := range state.ImprovementRecommendations {
		fmt.Printf("recommendation: %s\n", item)
	}
	for _, item := range state.PersonalizedTips {
		fmt.Printf("tip: %s\n", item)
	}
}

func newAICollaborators(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.ResumeParser, ai.Scorer, ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	aiLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, nil, nil, err
	}

	maxLogLen := cfg.Gemini.MaxLogLength

	return gemini.NewParser(generator, aiLogger, maxLogLen),
		gemini.NewScorer(generator, aiLogger, maxLogLen),
		gemini.NewAdvisor(generator, aiLogger, maxLogLen),
		nil
}

// normalizeConfig fills in the nested sections so callers can dereference
// them without nil checks, and merges environment-bound key paths.
func normalizeConfig(config *Config) {
	if config.Input == nil {
		config.Input = &InputConfig{}
	}
	if config.Limits == nil {
		config.Limits = &LimitsConfig{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	if config.Input.File == "" {
		config.Input.File = viper.GetString("input.file")
	}
	if config.Search.APIKeyFile == "" {
		config.Search.APIKeyFile = viper.GetString("search.api-key-file")
	}
	if config.AI.Gemini.APIKeyFile == "" {
		config.AI.Gemini.APIKeyFile = viper.GetString("ai.gemini.api-key-file")
	}
}
