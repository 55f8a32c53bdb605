package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bizdoc/internal/domain"
	"bizdoc/internal/export"
	"bizdoc/internal/parser"
	"bizdoc/internal/port"
	"bizdoc/internal/source"
)

// Analysis list limits.
const (
	AnalysisSectionLimit = 10
	AnalysisTeamLimit    = 5
)

// ExportURLExpirySeconds is the lifetime of presigned download URLs for
// exports uploaded to S3.
const ExportURLExpirySeconds = 3600

// ExportResult describes where an export was written.
type ExportResult struct {
	// Location is the local path or s3:// reference.
	Location string
	// DownloadURL is a presigned URL for S3 exports; empty for local files.
	DownloadURL string
}

// ParseContentInput is the DTO for parsing in-memory content.
type ParseContentInput struct {
	Content []byte
	// SourcePath is used only for company/project inference.
	SourcePath string
}

// DocumentService defines the document parsing contract.
type DocumentService interface {
	// ParseRef opens a local path or s3:// reference and parses it.
	ParseRef(ctx context.Context, ref string) (*domain.ParsedDocument, error)
	ParseContent(ctx context.Context, input ParseContentInput) (*domain.ParsedDocument, error)
	Analyze(doc *domain.ParsedDocument) *domain.DocumentAnalysis
	Export(ctx context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, w io.Writer) error
	// ExportTo writes an export to a local file, a local directory, or an
	// s3:// reference and returns where it was written.
	ExportTo(ctx context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, dest string) (*ExportResult, error)
}

type documentService struct {
	parser   port.DocumentParser
	source   port.DocumentSource
	storage  port.ObjectStorage
	maxBytes int64
	log      *slog.Logger
}

// NewDocumentService creates a new DocumentService implementation. storage
// may be nil when S3 is not configured.
func NewDocumentService(
	p port.DocumentParser,
	src port.DocumentSource,
	storage port.ObjectStorage,
	maxBytes int64,
	logger *slog.Logger,
) DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		parser:   p,
		source:   src,
		storage:  storage,
		maxBytes: maxBytes,
		log:      logger.With("component", "documentService"),
	}
}

func (s *documentService) ParseRef(ctx context.Context, ref string) (*domain.ParsedDocument, error) {
	doc, err := s.source.Open(ctx, ref)
	if err != nil {
		s.log.Warn("open failed", "ref", ref, "error", err)
		return nil, err
	}

	parsed, err := s.parser.Parse(ctx, port.ParseInput{
		Content:    doc.Content,
		SourcePath: doc.Path,
		ModTime:    doc.ModTime,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ref, err)
	}
	s.log.Debug("parsed document", "ref", ref, "bytes", len(doc.Content),
		"sections", len(parsed.Sections), "tables", len(parsed.Tables))
	return parsed, nil
}

func (s *documentService) ParseContent(ctx context.Context, input ParseContentInput) (*domain.ParsedDocument, error) {
	if s.maxBytes > 0 && int64(len(input.Content)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrDocumentTooLarge, len(input.Content))
	}
	parsed, err := s.parser.Parse(ctx, port.ParseInput{
		Content:    input.Content,
		SourcePath: input.SourcePath,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	return parsed, nil
}

func (s *documentService) Analyze(doc *domain.ParsedDocument) *domain.DocumentAnalysis {
	a := &domain.DocumentAnalysis{
		Summary:     parser.Summarize(doc),
		Metadata:    doc.Metadata,
		Sections:    []domain.SectionOutline{},
		TeamMembers: []domain.TeamMember{},
		Financial:   []domain.FinancialOverview{},
		Links:       doc.Links,
	}

	for i, sec := range doc.Sections {
		if i == AnalysisSectionLimit {
			a.MoreSections = len(doc.Sections) - AnalysisSectionLimit
			break
		}
		a.Sections = append(a.Sections, domain.SectionOutline{Title: sec.Title, Level: sec.Level})
	}

	if len(doc.TeamMembers) > AnalysisTeamLimit {
		a.TeamMembers = append(a.TeamMembers, doc.TeamMembers[:AnalysisTeamLimit]...)
		a.MoreTeamMembers = len(doc.TeamMembers) - AnalysisTeamLimit
	} else {
		a.TeamMembers = append(a.TeamMembers, doc.TeamMembers...)
	}

	for i, fd := range doc.FinancialData {
		overview := domain.FinancialOverview{Title: fd.Title, Rows: len(fd.TableData)}
		if i < len(doc.Charts) {
			overview.Chart = doc.Charts[i]
		}
		a.Financial = append(a.Financial, overview)
	}
	return a
}

func (s *documentService) Export(_ context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, w io.Writer) error {
	return export.Write(w, doc, format)
}

func (s *documentService) ExportTo(ctx context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, dest string) (*ExportResult, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, doc, format); err != nil {
		return nil, err
	}
	filename := export.BuildFilename(doc.Metadata.Title, format, time.Now())

	if source.IsS3(dest) {
		return s.upload(ctx, &buf, format, dest, filename)
	}

	target := dest
	if strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, string(filepath.Separator)) || isDir(dest) {
		target = filepath.Join(dest, filename)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing export: %w", err)
	}
	s.log.Info("export written", "path", target, "format", format, "bytes", buf.Len())
	return &ExportResult{Location: target}, nil
}

func (s *documentService) upload(ctx context.Context, buf *bytes.Buffer, format domain.ExportFormat, dest, filename string) (*ExportResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: s3 is not configured", domain.ErrUnsupportedSource)
	}
	bucket, key, err := source.ParseS3(dest)
	if err != nil {
		return nil, err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		key += filename
	}

	size := int64(buf.Len())
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         key,
		Body:        buf,
		ContentType: domain.ExportContentTypes[format],
		Size:        size,
	})
	if err != nil {
		s.log.Error("export upload failed", "bucket", bucket, "key", key, "error", err)
		return nil, fmt.Errorf("uploading export: %w", err)
	}
	s.log.Info("export uploaded", "location", out.Location, "format", format, "bytes", size)

	result := &ExportResult{Location: "s3://" + bucket + "/" + key}
	url, err := s.storage.GetPresignedURL(ctx, bucket, key, ExportURLExpirySeconds)
	if err != nil {
		s.log.Warn("presigning export failed", "bucket", bucket, "key", key, "error", err)
		return result, nil
	}
	result.DownloadURL = url
	return result, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
