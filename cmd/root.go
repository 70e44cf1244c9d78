package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/server"
)

const (
	app       = "resume-screener"
	envPrefix = "RESUME_SCREENER"
)

type Config struct {
	Server    server.Config    `mapstructure:"server"`
	AI        *AIConfig        `mapstructure:"ai"`
	Screening *ScreeningConfig `mapstructure:"screening"`
}

type AIConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	Provider              string        `mapstructure:"provider"`
	Gemini                *GeminiConfig `mapstructure:"gemini"`
	Models                []string      `mapstructure:"models"`
	ClassificationModel   string        `mapstructure:"classification-model"`
	Temperature           float32       `mapstructure:"temperature"`
	MaxOutputTokens       int32         `mapstructure:"max-output-tokens"`
	MaxInputChars         int           `mapstructure:"max-input-chars"`
	ExtractionTimeout     time.Duration `mapstructure:"extraction-timeout"`
	ClassificationTimeout time.Duration `mapstructure:"classification-timeout"`
	MaxLogLength          int           `mapstructure:"max-log-length"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type ScreeningConfig struct {
	screening.Config    `mapstructure:",squash"`
	MinimumUsableLength int `mapstructure:"minimum-usable-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener checks that uploaded documents are resumes and extracts structured profiles from them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", server.DefaultListen)
	v.SetDefault("server.max-upload-bytes", server.DefaultMaxUploadBytes)

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.models", ai.DefaultModels)
	v.SetDefault("ai.classification-model", ai.DefaultClassificationModel)
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.max-output-tokens", 4000)
	v.SetDefault("ai.max-input-chars", 15000)
	v.SetDefault("ai.extraction-timeout", 60*time.Second)
	v.SetDefault("ai.classification-timeout", 15*time.Second)
	v.SetDefault("ai.max-log-length", 200)

	v.SetDefault("screening.min-length", screening.DefaultMinLength)
	v.SetDefault("screening.reject-below", screening.DefaultRejectBelow)
	v.SetDefault("screening.accept-from", screening.DefaultAcceptFrom)
	v.SetDefault("screening.minimum-usable-length", 50)
}

func initConfig() {
	// A missing .env is the normal case outside of local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every key has a default, so the config file itself is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
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
