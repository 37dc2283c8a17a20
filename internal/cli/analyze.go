package cli

import (
	"context"
	"fmt"
	"time"

	"resumescore/internal/analyzer"
	"resumescore/internal/common"
	"resumescore/internal/nlp"
	"resumescore/internal/observability"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file> [job-description-file]",
	Short: "Analyze a resume for ATS compatibility",
	Long: `Analyze a plain-text resume for ATS compatibility and produce a scored
report. When a job description file is also given, the analysis includes
keyword match percentage, missing keywords and a skills gap.

The report covers:
- Section, skill, keyword and action verb extraction
- Skill validation against described experience (exact and semantic)
- Grammar findings with severity and context
- Location privacy risk and penalty
- Component score breakdown with an overall 0-100 score and feedback`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	om, err := observability.NewManager(cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	caps := nlp.NewCapabilities(cfg, om.Metrics().NLPObserver(), logger)
	pipeline, err := analyzer.New(cfg, caps, om.Metrics(), logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.LogError(err, "Failed to close analyzer")
		}
	}()

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ReadTexts(args...)
	if err != nil {
		return err
	}

	resumeText := contents[0]
	jdText := ""
	if len(contents) == 2 {
		jdText = contents[1]
	}

	logger.Info("Starting resume analysis",
		"resume_file", args[0],
		"resume_chars", len(resumeText),
		"has_job_description", jdText != "",
		"output_format", analyzeConfig.OutputFormat)

	report, err := pipeline.Analyze(cmd.Context(), resumeText, jdText)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(report, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Resume analysis completed successfully",
		"overall_score", report.Score.Overall)
	return nil
}
