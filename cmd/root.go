package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-analyzer"
)

type Config struct {
	Input  *InputConfig  `mapstructure:"input"`
	Limits *LimitsConfig `mapstructure:"limits"`
	Search *SearchConfig `mapstructure:"search"`
	AI     *AIConfig     `mapstructure:"ai"`
}

type InputConfig struct {
	File            string `mapstructure:"file"`
	JobTitle        string `mapstructure:"job-title"`
	Industry        string `mapstructure:"industry"`
	Location        string `mapstructure:"location"`
	ExperienceLevel string `mapstructure:"experience-level"`
}

type LimitsConfig struct {
	MaxFileSizeMB    int `mapstructure:"max-file-size-mb"`
	MaxJobs          int `mapstructure:"max-jobs"`
	ScoreConcurrency int `mapstructure:"score-concurrency"`
}

type SearchConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer is a cli for analyzing a resume against the current job market",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("search.api-key-file", "TAVILY_API_KEY_FILE"); err != nil {
		log.Fatalf("binding TAVILY_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the analyze command now. If there is no config, we can skip initialization
	if analyzeCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing default config is fine since flags and environment variables
	// can carry the whole configuration. An explicit --config must exist.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
