package port

import (
	"context"
	"time"

	"bizdoc/internal/domain"
)

// ParseInput carries one document's text and where it came from.
type ParseInput struct {
	Content []byte
	// SourcePath is used for company/project inference and, when ModTime is
	// zero, for a modification-time stat. It may be empty.
	SourcePath string
	ModTime    time.Time
}

// DocumentParser turns document text into a ParsedDocument. Implementations
// never fail on malformed content; errors are reserved for cancellation.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*domain.ParsedDocument, error)
}
