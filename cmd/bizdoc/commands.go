package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bizdoc/internal/app"
	"bizdoc/internal/domain"
	"bizdoc/internal/export"
	"bizdoc/internal/parser"
	"bizdoc/internal/service"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) app(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), o.configPath, cmd.ErrOrStderr())
}

func parseCmd(opts *rootOptions) *cobra.Command {
	var compact, nested bool

	cmd := &cobra.Command{
		Use:   "parse <file|s3://bucket/key>",
		Short: "Parse a document and print the structured result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			doc, err := a.Documents.ParseRef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if nested {
				view := *doc
				view.Sections = parser.Nest(doc.Sections)
				doc = &view
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")
	cmd.Flags().BoolVar(&nested, "nested", false, "print sections as a tree instead of a flat list")
	return cmd
}

func analyzeCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file|s3://bucket/key>",
		Short: "Print a human-readable analysis of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			doc, err := a.Documents.ParseRef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			analysis := a.Documents.Analyze(doc)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}
			writeAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func batchCmd(opts *rootOptions) *cobra.Command {
	var (
		outDir      string
		reportPath  string
		retryFailed bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch [dir|s3://bucket/prefix]",
		Short: "Parse every document under a directory or prefix",
		Long: "Parse every document under a directory or prefix with bounded concurrency.\n" +
			"Without an argument, --retry-failed re-runs the failed jobs of the --report file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && (!retryFailed || reportPath == "") {
				return errors.New("a directory is required unless --retry-failed is used with --report")
			}
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				a.Config.Batch.Concurrency = concurrency
			}
			runner := a.BatchRunner(outDir)

			var report *domain.BatchReport
			if len(args) == 1 {
				report, err = runner.RunDir(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			} else {
				report, err = readReportFile(reportPath)
				if err != nil {
					return err
				}
			}
			if retryFailed && report.Summary.Failed > 0 {
				report = runner.RetryFailed(cmd.Context(), report)
			}

			writeBatchSummary(cmd.OutOrStdout(), report)
			if reportPath != "" {
				if err := writeReportFile(reportPath, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", reportPath)
			}
			if report.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d documents failed", report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "directory for per-document JSON output")
	cmd.Flags().StringVar(&reportPath, "report", "", "batch report JSON file to write (and read with --retry-failed)")
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "retry failed documents once")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "w", 0, "number of parallel workers (default: batch.concurrency)")
	return cmd
}

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		formatName string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export <file|s3://bucket/key>",
		Short: "Export a document's financial tables to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			doc, err := a.Documents.ParseRef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "-" {
				return a.Documents.Export(cmd.Context(), doc, format, cmd.OutOrStdout())
			}
			result, err := a.Documents.ExportTo(cmd.Context(), doc, format, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d financial table(s) to %s\n", len(doc.FinancialData), result.Location)
			if result.DownloadURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Download URL (expires in %s): %s\n",
					time.Duration(service.ExportURLExpirySeconds)*time.Second, result.DownloadURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", string(domain.ExportCSV), "export format: csv|xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output file, directory, s3://bucket/key, or - for stdout")
	return cmd
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx, version)
		},
	}
}

func readReportFile(path string) (*domain.BatchReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()
	return service.ReadReport(f)
}

func writeReportFile(path string, report *domain.BatchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := service.WriteReport(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
