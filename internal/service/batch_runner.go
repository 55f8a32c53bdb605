package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bizdoc/internal/domain"
	"bizdoc/internal/export"
	"bizdoc/internal/parser"
	"bizdoc/internal/port"
)

// BatchConfig holds settings for the batch runner.
type BatchConfig struct {
	Concurrency int
	// Timeout bounds each file's open and parse. Zero means no limit.
	Timeout    time.Duration
	Extensions []string
	Recursive  bool
	// OutputDir, when set, receives one JSON ParsedDocument per completed file.
	OutputDir string
}

// BatchRunner parses many documents with bounded concurrency. A failing
// document never affects the others.
type BatchRunner struct {
	docs   DocumentService
	source port.DocumentSource
	cfg    BatchConfig
	log    *slog.Logger
}

// NewBatchRunner creates a new BatchRunner.
func NewBatchRunner(docs DocumentService, src port.DocumentSource, cfg BatchConfig, logger *slog.Logger) *BatchRunner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchRunner{
		docs:   docs,
		source: src,
		cfg:    cfg,
		log:    logger.With("component", "batch"),
	}
}

// RunDir lists the documents under root and parses them. Only a listing
// failure is returned as an error; per-file failures are recorded in the
// report.
func (b *BatchRunner) RunDir(ctx context.Context, root string) (*domain.BatchReport, error) {
	refs, err := b.source.List(ctx, root, port.ListOptions{
		Extensions: b.cfg.Extensions,
		Recursive:  b.cfg.Recursive,
	})
	if err != nil {
		return nil, err
	}
	report := b.Run(ctx, refs)
	report.Root = root
	return report, nil
}

// Run parses every ref and returns the report. Jobs keep the order of refs.
func (b *BatchRunner) Run(ctx context.Context, refs []string) *domain.BatchReport {
	report := &domain.BatchReport{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		Jobs:      make([]domain.BatchJob, len(refs)),
	}
	for i, ref := range refs {
		report.Jobs[i] = domain.BatchJob{ID: uuid.New(), Ref: ref, Status: domain.JobStatusPending}
	}

	b.log.Info("batch started", "batch_id", report.ID, "files", len(refs), "concurrency", b.cfg.Concurrency)
	b.runJobs(ctx, report.Jobs, allIndexes(len(refs)))

	report.FinishedAt = time.Now().UTC()
	report.Summarize()
	b.log.Info("batch finished", "batch_id", report.ID,
		"completed", report.Summary.Completed, "failed", report.Summary.Failed,
		"success_rate", report.Summary.SuccessRate)
	return report
}

// RetryFailed re-runs the failed jobs of report once and returns an updated
// copy. Completed jobs are carried over untouched.
func (b *BatchRunner) RetryFailed(ctx context.Context, report *domain.BatchReport) *domain.BatchReport {
	retried := *report
	retried.Jobs = append([]domain.BatchJob(nil), report.Jobs...)

	var failed []int
	for i, j := range retried.Jobs {
		if j.Status == domain.JobStatusFailed {
			failed = append(failed, i)
		}
	}
	b.log.Info("retrying failed jobs", "batch_id", report.ID, "jobs", len(failed))
	b.runJobs(ctx, retried.Jobs, failed)

	retried.FinishedAt = time.Now().UTC()
	retried.Summarize()
	return &retried
}

// runJobs runs jobs[i] for every i in indexes, at most Concurrency at a time.
// Each goroutine writes only its own slice element.
func (b *BatchRunner) runJobs(ctx context.Context, jobs []domain.BatchJob, indexes []int) {
	var g errgroup.Group
	g.SetLimit(b.cfg.Concurrency)
	for _, i := range indexes {
		job := &jobs[i]
		g.Go(func() error {
			b.runJob(ctx, job)
			return nil
		})
	}
	_ = g.Wait()
}

func (b *BatchRunner) runJob(ctx context.Context, job *domain.BatchJob) {
	job.Attempts++
	job.StartedAt = time.Now().UTC()
	job.Error = ""

	err := b.parseJob(ctx, job)

	job.DurationMS = time.Since(job.StartedAt).Milliseconds()
	if err != nil {
		job.Status = domain.JobStatusFailed
		job.Error = err.Error()
		b.log.Warn("job failed", "job_id", job.ID, "ref", job.Ref, "attempt", job.Attempts, "error", err)
		return
	}
	job.Status = domain.JobStatusCompleted
	b.log.Debug("job completed", "job_id", job.ID, "ref", job.Ref, "duration_ms", job.DurationMS)
}

func (b *BatchRunner) parseJob(ctx context.Context, job *domain.BatchJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	doc, err := b.docs.ParseRef(ctx, job.Ref)
	if err != nil {
		return err
	}
	summary := parser.Summarize(doc)
	job.Summary = &summary

	if b.cfg.OutputDir != "" {
		out, err := writeDocumentJSON(b.cfg.OutputDir, job.Ref, doc)
		if err != nil {
			return err
		}
		job.OutputPath = out
	}
	return nil
}

// outputName derives a stable, collision-resistant file name from ref.
func outputName(ref string) string {
	base := path.Base(filepath.ToSlash(ref))
	base = strings.TrimSuffix(base, path.Ext(base))
	name := export.SanitizeFilename(base)
	if name == "" {
		name = "document"
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(ref)).String()[:8]
	return name + "_" + id + ".json"
}

func writeDocumentJSON(dir, ref string, doc *domain.ParsedDocument) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", ref, err)
	}
	out := filepath.Join(dir, outputName(ref))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// WriteReport encodes report as indented JSON.
func WriteReport(w io.Writer, report *domain.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader) (*domain.BatchReport, error) {
	var report domain.BatchReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding batch report: %w", err)
	}
	return &report, nil
}
