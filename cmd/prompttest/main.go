package main

// Exercise the pipeline components from a terminal:
//   go run ./cmd/prompttest extract --url https://example.com/careers
//   go run ./cmd/prompttest compose --title "DevOps Engineer" --company Acme --skills Docker,Kubernetes
//   go run ./cmd/prompttest match --query "kubernetes migration"

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"outreach-backend/internal/bootstrap"
	"outreach-backend/internal/emails"
	"outreach-backend/internal/jobs"
	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "prompttest",
		Short:         "Run the outreach pipeline components against live providers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if !verbose {
				telemetry.SetOutput(io.Discard)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline logs to stdout")

	root.AddCommand(newExtractCmd(), newComposeCmd(), newMatchCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var pageURL string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract job listings from a careers page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(pageURL) == "" {
				return fmt.Errorf("--url is required")
			}
			p, err := bootstrap.BuildPipeline(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.Extractor.Extract(cmd.Context(), pageURL))
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "careers page URL")
	return cmd
}

func newComposeCmd() *cobra.Command {
	var (
		job   jobs.JobListing
		style emails.Style
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Match portfolio links and draft an email for one job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(job.Title) == "" {
				return fmt.Errorf("--title is required")
			}
			p, err := bootstrap.BuildPipeline(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			links := p.Matcher.Match(cmd.Context(), job.Description, job.Skills)
			draft := p.Composer.ComposeStyled(cmd.Context(), job, links, style)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"subject":        draft.Subject,
				"content":        draft.Body,
				"portfolioLinks": links,
			})
		},
	}
	cmd.Flags().StringVar(&job.Title, "title", "", "job title")
	cmd.Flags().StringVar(&job.Company, "company", "Company", "company name")
	cmd.Flags().StringSliceVar(&job.Skills, "skills", nil, "comma-separated skills")
	cmd.Flags().StringVar(&job.Experience, "experience", "", "experience requirement")
	cmd.Flags().StringVar(&job.Description, "description", "", "job description")
	cmd.Flags().StringVar(&style.Tone, "tone", "", "tone hint (professional, friendly, casual, formal)")
	cmd.Flags().StringVar(&style.Length, "length", "", "length hint (short, medium, long)")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var (
		query  string
		skills []string
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Show the portfolio links the matcher picks for a query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(query) == "" && len(skills) == 0 {
				return fmt.Errorf("--query or --skills is required")
			}
			p, err := bootstrap.BuildPipeline(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.Matcher.Match(cmd.Context(), query, skills))
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "free-text description")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "comma-separated skills")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
