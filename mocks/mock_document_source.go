package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizdoc/internal/port"
)

// MockDocumentSource is a mock implementation of port.DocumentSource.
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) Open(ctx context.Context, ref string) (*port.Document, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Document), args.Error(1)
}

func (m *MockDocumentSource) List(ctx context.Context, root string, opts port.ListOptions) ([]string, error) {
	args := m.Called(ctx, root, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
