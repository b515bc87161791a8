package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gh-talent-scout/internal/ai"
	"gh-talent-scout/internal/ai/gemini"
	"gh-talent-scout/internal/config"
	"gh-talent-scout/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a free-text job description into a job requirement JSON (needs a Gemini API key)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runParse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("file", "f", "", "path to the job description text file (default: stdin)")
	parseCmd.Flags().StringP("output", "o", "", "path to write the job requirement JSON (default: stdout)")
}

func runParse(cmd *cobra.Command) error {
	log, err := logger.New(viper.GetBool("json-log"), viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	description, err := readDescription(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()

	generator, err := gemini.NewGenerator(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	if err != nil {
		return err
	}

	var parser ai.JobParser = gemini.NewParser(generator, log)

	job, err := parser.Parse(ctx, description)
	if err != nil {
		return fmt.Errorf("parsing job description: %w", err)
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal requirement: %w", err)
	}
	data = append(data, '\n')

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	return nil
}

func readDescription(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
