package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gh-talent-scout/internal/api/github"
	"gh-talent-scout/internal/config"
	"gh-talent-scout/internal/location"
	"gh-talent-scout/internal/logger"
	"gh-talent-scout/internal/models"
	"gh-talent-scout/internal/search"
	"gh-talent-scout/internal/storage/postgres"
	"gh-talent-scout/internal/storage/redis"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and rank GitHub candidates for a job requirement JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSearch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("input", "i", "", "path to the job requirement JSON file")
	searchCmd.Flags().StringP("output", "o", "", "path to write the response JSON (default: stdout)")
	searchCmd.Flags().Bool("pretty", false, "pretty-print the output JSON")
	searchCmd.Flags().Float64("min-score", 0, "override the minimum candidate score")
	searchCmd.Flags().Int("threshold", 0, "override the broadening result threshold")
	searchCmd.Flags().String("save", "", "save the requirement under this name for watch mode (needs Postgres)")
	searchCmd.Flags().String("saved", "", "run a previously saved search by name instead of --input (needs Postgres)")
}

func runSearch(cmd *cobra.Command) error {
	log, err := logger.New(viper.GetBool("json-log"), viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v, _ := cmd.Flags().GetFloat64("min-score"); v > 0 {
		cfg.Search.MinScore = v
	}
	if v, _ := cmd.Flags().GetInt("threshold"); v > 0 {
		cfg.Search.MinResultsThreshold = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	inputPath, _ := cmd.Flags().GetString("input")
	savedName, _ := cmd.Flags().GetString("saved")
	if err := validateSource(inputPath, savedName); err != nil {
		return err
	}

	service, store, cache := buildService(cfg, log)
	defer cache.Close()
	if store != nil {
		defer store.Close()
	}

	ctx := context.Background()

	var job *models.JobRequirement
	var savedID int64
	if savedName != "" {
		if store == nil {
			return fmt.Errorf("--saved requires a reachable Postgres (SCOUT_POSTGRES_DSN)")
		}
		saved, err := store.GetSavedSearch(ctx, savedName)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("no saved search named %q", savedName)
		}
		savedID = saved.ID
		if job, err = saved.Job(); err != nil {
			return fmt.Errorf("decoding saved search %q: %w", savedName, err)
		}
	} else {
		if job, err = readJob(inputPath); err != nil {
			return err
		}
	}

	response, err := service.Search(ctx, job)
	if err != nil {
		return err
	}

	if saveName, _ := cmd.Flags().GetString("save"); saveName != "" {
		if store == nil {
			return fmt.Errorf("--save requires a reachable Postgres (SCOUT_POSTGRES_DSN)")
		}
		id, err := store.SaveSearch(ctx, saveName, job)
		if err != nil {
			return err
		}
		log.Info("saved search", zap.String("name", saveName), zap.Int64("id", id))
	}

	if savedID != 0 {
		if err := store.UpdateLastRun(ctx, savedID); err != nil {
			log.Warn("failed to update last run", zap.String("name", savedName), zap.Error(err))
		}
	}

	outputPath, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")
	if err := writeResponse(response, outputPath, pretty); err != nil {
		return err
	}

	log.Info("search finished",
		zap.Int("returned", response.Metadata.Returned),
		zap.Int("total_found", response.Metadata.TotalFound),
		zap.Bool("cache_hit", response.Metadata.CacheHit),
		zap.Int64("execution_ms", response.Metadata.ExecutionMS),
	)

	return nil
}

// buildService wires the pipeline. Postgres is optional: no DSN means no
// history, nothing else changes.
func buildService(cfg *config.Config, log *zap.Logger) (*search.Service, *postgres.Store, *redis.Cache) {
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)

	client := github.New(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.Timeout, log)
	if cfg.GitHub.Token == "" {
		log.Warn("no GitHub token configured, using unauthenticated rate limits")
	}

	var store *postgres.Store
	if cfg.Postgres.DSN != "" {
		var err error
		store, err = postgres.New(cfg.Postgres.DSN, log)
		if err != nil {
			log.Warn("postgres unavailable, continuing without history", zap.Error(err))
			store = nil
		}
	}

	service := search.New(client, cache, location.NewResolver(), store, log, search.Options{
		MinResultsThreshold: cfg.Search.MinResultsThreshold,
		MinScore:            cfg.Search.MinScore,
		EnrichWorkers:       cfg.Search.EnrichWorkers,
	})

	return service, store, cache
}

// validateSource enforces exactly one requirement source.
func validateSource(inputPath, savedName string) error {
	if inputPath == "" && savedName == "" {
		return fmt.Errorf("either --input or --saved is required")
	}
	if inputPath != "" && savedName != "" {
		return fmt.Errorf("--input and --saved are mutually exclusive")
	}
	return nil
}

func readJob(path string) (*models.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var job models.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &job, nil
}

func writeResponse(response *models.SearchResponse, path string, pretty bool) error {
	var data []byte
	var err error

	if pretty {
		data, err = json.MarshalIndent(response, "", "  ")
	} else {
		data, err = json.Marshal(response)
	}
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
