package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockMediaStore is a mock implementation of service.MediaStore. The body is
// not part of the recorded call.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Put(ctx context.Context, ext, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ext, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, url string) error {
	return m.Called(url).Error(0)
}
