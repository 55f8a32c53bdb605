// Package source opens documents from the local filesystem or S3.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"bizdoc/internal/domain"
	"bizdoc/internal/port"
)

const s3Scheme = "s3://"

// Resolver dispatches document references to the filesystem or, for
// s3://bucket/key references, to object storage.
type Resolver struct {
	storage  port.ObjectStorage
	maxBytes int64
}

var _ port.DocumentSource = (*Resolver)(nil)

// NewResolver creates a Resolver. storage may be nil, in which case S3
// references fail with domain.ErrUnsupportedSource. maxBytes <= 0 disables
// the size limit.
func NewResolver(storage port.ObjectStorage, maxBytes int64) *Resolver {
	return &Resolver{storage: storage, maxBytes: maxBytes}
}

// IsS3 reports whether ref is an s3:// reference.
func IsS3(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// ParseS3 splits an s3://bucket/key reference.
func ParseS3(ref string) (bucket, key string, err error) {
	if !IsS3(ref) {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, ref)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: missing bucket in %s", domain.ErrUnsupportedSource, ref)
	}
	return bucket, key, nil
}

// Open reads the document named by ref.
func (r *Resolver) Open(ctx context.Context, ref string) (*port.Document, error) {
	if IsS3(ref) {
		return r.openS3(ctx, ref)
	}
	return r.openFile(ref)
}

func (r *Resolver) openFile(name string) (*port.Document, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrSourceUnreadable, name)
	}
	if r.maxBytes > 0 && info.Size() > r.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrDocumentTooLarge, name, info.Size())
	}

	content, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, name, err)
	}
	return &port.Document{
		Ref:     name,
		Path:    name,
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

func (r *Resolver) openS3(ctx context.Context, ref string) (*port.Document, error) {
	bucket, key, err := ParseS3(ref)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("%w: missing key in %s", domain.ErrUnsupportedSource, ref)
	}
	if r.storage == nil {
		return nil, fmt.Errorf("%w: s3 is not configured", domain.ErrUnsupportedSource)
	}

	obj, err := r.storage.Download(ctx, bucket, key, r.maxBytes)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, ref, err)
	}
	return &port.Document{
		Ref:     ref,
		Path:    key,
		Content: obj.Body,
		ModTime: obj.LastModified,
	}, nil
}

// List returns the document references under root in lexical order. A local
// root may be a single file, which is returned as is.
func (r *Resolver) List(ctx context.Context, root string, opts port.ListOptions) ([]string, error) {
	if IsS3(root) {
		return r.listS3(ctx, root, opts)
	}
	return listFiles(root, opts)
}

func listFiles(root string, opts port.ListOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var refs []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesExtension(p, opts.Extensions) {
			refs = append(refs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", domain.ErrSourceUnreadable, root, err)
	}
	sort.Strings(refs)
	return refs, nil
}

func (r *Resolver) listS3(ctx context.Context, root string, opts port.ListOptions) ([]string, error) {
	bucket, prefix, err := ParseS3(root)
	if err != nil {
		return nil, err
	}
	if r.storage == nil {
		return nil, fmt.Errorf("%w: s3 is not configured", domain.ErrUnsupportedSource)
	}

	objects, err := r.storage.List(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, root, err)
	}

	dir := prefix
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	var refs []string
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") || !matchesExtension(obj.Key, opts.Extensions) {
			continue
		}
		if !opts.Recursive && strings.Contains(strings.TrimPrefix(obj.Key, dir), "/") {
			continue
		}
		refs = append(refs, s3Scheme+bucket+"/"+obj.Key)
	}
	sort.Strings(refs)
	return refs, nil
}

func matchesExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(filepath.ToSlash(name)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
