package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
	"invoiceapi/internal/storage"
)

const presignExpiry = 15 * time.Minute

// AttachmentService stores the scanned source document of an invoice in
// object storage and tracks it in the database.
type AttachmentService interface {
	// Upload streams the document to object storage and records it against
	// the invoice; the object is removed again if the database write fails.
	Upload(ctx context.Context, invoiceID string, r io.Reader, filename, contentType string, size int64) (*model.InvoiceDocument, error)

	// DownloadURL returns a time-limited URL for the invoice's document.
	DownloadURL(ctx context.Context, invoiceID string) (string, error)
}

type attachmentService struct {
	store storage.Storage
	repo  repository.InvoiceRepository
}

// NewAttachmentService constructs an AttachmentService.
func NewAttachmentService(store storage.Storage, repo repository.InvoiceRepository) AttachmentService {
	return &attachmentService{store: store, repo: repo}
}

func (s *attachmentService) Upload(ctx context.Context, invoiceID string, r io.Reader, filename, contentType string, size int64) (*model.InvoiceDocument, error) {
	if invoiceID == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	exists, err := s.repo.InvoiceExists(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return nil, ErrInvoiceNotFound
	}

	// Object keys are invoice-scoped; the stored name keeps only the
	// original extension.
	genName := uuid.New().String() + filepath.Ext(filename)
	key := filepath.ToSlash(filepath.Join("invoices", invoiceID, genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
			"invoice-id":        invoiceID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.InvoiceDocument{
		ID:          uuid.New().String(),
		InvoiceID:   invoiceID,
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.AttachDocument(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *attachmentService) DownloadURL(ctx context.Context, invoiceID string) (string, error) {
	if invoiceID == "" {
		return "", ErrIDRequired
	}
	doc, err := s.repo.FindDocument(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvoiceNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
}
