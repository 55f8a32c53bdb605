package port

import (
	"context"
	"time"
)

// Document is raw document content read from a source.
type Document struct {
	// Ref is the reference the document was opened with: a local path or an
	// s3://bucket/key URL.
	Ref string
	// Path is the slash-or-OS path used for company/project inference.
	Path    string
	Content []byte
	ModTime time.Time
}

// ListOptions filters document listings.
type ListOptions struct {
	// Extensions are lowercase ".ext" suffixes. Empty accepts every file.
	Extensions []string
	Recursive  bool
}

// DocumentSource opens and enumerates documents by reference.
type DocumentSource interface {
	Open(ctx context.Context, ref string) (*Document, error)
	List(ctx context.Context, root string, opts ListOptions) ([]string, error)
}
