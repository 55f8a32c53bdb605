package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"bizdoc/internal/domain"
	"bizdoc/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) ParseRef(ctx context.Context, ref string) (*domain.ParsedDocument, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDocument), args.Error(1)
}

func (m *MockDocumentService) ParseContent(ctx context.Context, input service.ParseContentInput) (*domain.ParsedDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDocument), args.Error(1)
}

func (m *MockDocumentService) Analyze(doc *domain.ParsedDocument) *domain.DocumentAnalysis {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.DocumentAnalysis)
}

func (m *MockDocumentService) Export(ctx context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, doc, format, w)
	return args.Error(0)
}

func (m *MockDocumentService) ExportTo(ctx context.Context, doc *domain.ParsedDocument, format domain.ExportFormat, dest string) (*service.ExportResult, error) {
	args := m.Called(ctx, doc, format, dest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
