package file

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadPayslip stores a rendered payslip and returns its path and URL
	UploadPayslip(ctx context.Context, employeeID string, month string, content []byte) (filePath string, url string, err error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadPayslip uploads a payslip document under payslips/<employee>/
func (s *fileServiceImpl) UploadPayslip(ctx context.Context, employeeID string, month string, content []byte) (string, string, error) {
	if len(content) == 0 {
		return "", "", fmt.Errorf("empty payslip document")
	}

	// unique suffix so a retried generation never overwrites a stored file
	filename := fmt.Sprintf("%s-%s.pdf", month, uuid.New().String()[:8])
	objectPath := path.Join("payslips", employeeID, filename)

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(content), objectPath, "application/pdf")
	if err != nil {
		return "", "", fmt.Errorf("failed to upload payslip: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedPath, 0)
	if err != nil {
		_ = s.storage.Delete(ctx, storedPath)
		return "", "", fmt.Errorf("failed to get payslip url: %w", err)
	}

	return storedPath, url, nil
}

// DeleteFile deletes a file from storage
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL gets the URL for a file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
