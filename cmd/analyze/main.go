package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

var (
	jobDescriptionPath string
	actionName         string
)

var rootCmd = &cobra.Command{
	Use:   "analyze <resume-file>...",
	Short: "Analyse resumes against a job description",
	Long: `Run the ATS analysis on one or more local resumes (PDF or DOCX).

Example:
  analyze --job-description jd.txt resume.pdf
  analyze --job-description jd.txt --action match_score alice.pdf bob.docx`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&jobDescriptionPath, "job-description", "", "Path to a text file holding the job description")
	rootCmd.Flags().StringVar(&actionName, "action", string(models.ActionReport), "Analysis to run: report or match_score")
	_ = rootCmd.MarkFlagRequired("job-description")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	action := models.Action(actionName)
	if !action.Valid() {
		return fmt.Errorf("invalid --action %q: use report or match_score", actionName)
	}

	jobDescription, err := os.ReadFile(jobDescriptionPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()

	analyzer, stop, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	log.Printf("🚀 Running %s on %d resume(s)...", action.Label(), len(args))

	successCount := 0
	failCount := 0

	for _, path := range args {
		log.Printf("\n📄 Processing: %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ⚠️  Failed to read file: %v", err)
			failCount++
			continue
		}

		outcome := analyzer.Analyze(ctx, models.AnalysisInput{
			JobDescription:      string(jobDescription),
			Document:            &models.UploadedDocument{Filename: filepath.Base(path), Data: data},
			ReportRequested:     action == models.ActionReport,
			MatchScoreRequested: action == models.ActionMatchScore,
		})

		if !outcome.IsReport() {
			log.Printf("   ❌ %s", outcome.Message)
			failCount++
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "=== %s: %s ===\n%s\n\n", action.Label(), path, outcome.Message)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Analysis Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		return errors.New("some resumes could not be analysed, check the logs above")
	}

	log.Println("✅ All resumes analysed successfully!")
	return nil
}

func newAnalyzer(ctx context.Context, cfg *config.Config) (services.AnalyzerService, func(), error) {
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return nil, nil, err
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		return nil, nil, err
	}

	worker := services.NewWorker(cfg.Analysis.QueueSize)
	worker.Start(ctx)

	analyzer := services.NewAnalyzerService(
		storageService,
		services.NewTextExtractor(services.NewPDFParserService()),
		services.NewAnalysisRequester(geminiService, cfg.Analysis.RetryMaxAttempts),
		worker,
		nil,
		cfg.Analysis.Timeout,
	)

	return analyzer, worker.Stop, nil
}
