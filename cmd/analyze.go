package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|dir>",
	Short: "Analyze a resume file, or files from a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return analyze(args[0], all)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("all", "a", false, "analyze every supported file in the directory without asking")
}

func analyze(target string, all bool) error {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	files, err := selectFiles(target, all)
	if err != nil {
		return err
	}

	p, err := newPipeline(ctx, config, logger)
	if err != nil {
		return err
	}

	failed := 0
	for _, file := range files {
		if err := analyzeFile(ctx, p, file, logger); err != nil {
			failed++
			logger.Error("analysis failed", zap.String("filename", file), zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func analyzeFile(ctx context.Context, p *pipeline.Pipeline, path string, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	resp, err := p.ProcessDocument(ctx, pipeline.Upload{Data: data, Filename: filepath.Base(path)})
	if err != nil {
		var rejected *pipeline.RejectedError
		if errors.As(err, &rejected) {
			printJSON(rejected.Validation)
		}
		return err
	}

	logger.Info("analyzed",
		zap.String("filename", path),
		zap.String("method", resp.Metadata.ExtractionMethod),
		zap.Float64("score", resp.Validation.Score),
	)
	printJSON(resp)
	return nil
}

// selectFiles resolves target to the files to analyze. For a directory the
// user picks one file unless all is set.
func selectFiles(target string, all bool) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	files, err := supportedFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported documents in %s", target)
	}
	if all {
		return files, nil
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	prompt := promptui.Select{
		Label: "Choose a document and press ENTER",
		Items: names,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return []string{files[idx]}, nil
}

func supportedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := document.FormatFromFilename(e.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}

func printJSON(v any) {
	// do not bother error since the values are plain structs
	pretty, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(pretty))
}
