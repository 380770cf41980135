package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoiceapi/internal/model"
	repoMocks "invoiceapi/internal/repository/mocks"
	"invoiceapi/internal/storage"
	storeMocks "invoiceapi/internal/storage/mocks"
)

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		invoiceID        string
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			invoiceID:        "inv-1",
			originalFilename: "scan.pdf",
			contentType:      "application/pdf",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				r := strings.NewReader("hello world")
				mRepo.On("InvoiceExists", ctx, "inv-1").Return(true, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "invoices/inv-1/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata: map[string]string{
						"original-filename": "scan.pdf",
						"invoice-id":        "inv-1",
					},
				}).Return(storage.ObjectInfo{
					Key:         "invoices/inv-1/uuid.pdf",
					Size:        11,
					ContentType: "application/pdf",
				}, nil)

				mRepo.On("AttachDocument", ctx, mock.MatchedBy(func(doc *model.InvoiceDocument) bool {
					return doc.InvoiceID == "inv-1" && doc.StoragePath == "invoices/inv-1/uuid.pdf"
				})).Return(&model.InvoiceDocument{ID: "gen-id", InvoiceID: "inv-1"}, nil)

				return r
			},
			wantErr: nil,
		},
		{
			name:             "validation error - empty invoice id",
			invoiceID:        "",
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ErrIDRequired,
		},
		{
			name:             "validation error - nil reader",
			invoiceID:        "inv-1",
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "unknown invoice",
			invoiceID:        "missing",
			originalFilename: "scan.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				mRepo.On("InvoiceExists", ctx, "missing").Return(false, nil)
				return strings.NewReader("hello")
			},
			wantErr: ErrInvoiceNotFound,
		},
		{
			name:             "storage error",
			invoiceID:        "inv-1",
			originalFilename: "scan.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("InvoiceExists", ctx, "inv-1").Return(true, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "repository error with successful rollback",
			invoiceID:        "inv-1",
			originalFilename: "scan.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("InvoiceExists", ctx, "inv-1").Return(true, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("AttachDocument", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:             "repository error with failed rollback",
			invoiceID:        "inv-1",
			originalFilename: "scan.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("InvoiceExists", ctx, "inv-1").Return(true, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("AttachDocument", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := NewAttachmentService(mStore, mRepo)

			r := tt.setupMocks(mStore, mRepo)

			doc, err := svc.Upload(ctx, tt.invoiceID, r, tt.originalFilename, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAttachmentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		invoiceID  string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository)
		wantErr    error
		wantURL    string
	}{
		{
			name:      "happy path",
			invoiceID: "inv-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("FindDocument", ctx, "inv-1").
					Return(&model.InvoiceDocument{InvoiceID: "inv-1", StoragePath: "invoices/inv-1/uuid.pdf"}, nil)
				mStore.On("PresignGet", ctx, "invoices/inv-1/uuid.pdf", presignExpiry).
					Return("https://minio/presigned", nil)
			},
			wantURL: "https://minio/presigned",
		},
		{
			name:       "validation error - empty id",
			invoiceID:  "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:      "no document on record",
			invoiceID: "inv-2",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("FindDocument", ctx, "inv-2").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvoiceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := NewAttachmentService(mStore, mRepo)

			tt.setupMocks(mStore, mRepo)

			url, err := svc.DownloadURL(ctx, tt.invoiceID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
