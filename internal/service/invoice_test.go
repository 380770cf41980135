package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoiceapi/internal/ingest"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
	repoMocks "invoiceapi/internal/repository/mocks"
)

func TestInvoiceService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		query      repository.ListQuery
		setupMocks func(mRepo *repoMocks.MockInvoiceRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *InvoiceListResult)
	}{
		{
			name:  "happy path",
			query: repository.ListQuery{Search: "acme", Sort: "amount", Order: "desc"},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("ListInvoices", ctx, repository.ListQuery{Search: "acme", Sort: "amount", Order: "desc"}).
					Return([]model.InvoiceRow{
						{ID: "1", VendorName: "Acme GmbH", Amount: 300},
						{ID: "2", VendorName: "Acme GmbH", Amount: 120},
					}, nil)
			},
			checkRes: func(t *testing.T, res *InvoiceListResult) {
				assert.Len(t, res.Invoices, 2)
				assert.Equal(t, 2, res.Total)
				assert.Equal(t, 1, res.Page)
				assert.Equal(t, 2, res.PageSize)
			},
		},
		{
			name:  "empty result",
			query: repository.ListQuery{},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("ListInvoices", ctx, repository.ListQuery{}).
					Return([]model.InvoiceRow{}, nil)
			},
			checkRes: func(t *testing.T, res *InvoiceListResult) {
				assert.Empty(t, res.Invoices)
				assert.Equal(t, 0, res.Total)
			},
		},
		{
			name:  "repository error",
			query: repository.ListQuery{},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("ListInvoices", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := NewInvoiceService(mRepo, ingest.NewAdapter(zerolog.Nop()), zerolog.Nop())

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.query)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.checkRes(t, res)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestInvoiceService_Ingest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		payload    *ingest.Payload
		setupMocks func(mRepo *repoMocks.MockInvoiceRepository)
		wantErr    error
		wantErrMsg string
		checkRes   func(t *testing.T, inv *model.Invoice)
	}{
		{
			name:    "happy path defaults status and id",
			payload: &ingest.Payload{},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("CreateInvoice", ctx, mock.MatchedBy(func(inv *model.Invoice) bool {
					return inv.ID != "" && inv.Status == "pending"
				})).Return(&model.Invoice{ID: "gen-id", Status: "pending", CreatedAt: time.Now()}, nil)
			},
			checkRes: func(t *testing.T, inv *model.Invoice) {
				assert.Equal(t, "gen-id", inv.ID)
			},
		},
		{
			name:    "keeps payload identity",
			payload: &ingest.Payload{ID: "inv-42", Status: "processed"},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("CreateInvoice", ctx, mock.MatchedBy(func(inv *model.Invoice) bool {
					return inv.ID == "inv-42" && inv.Status == "processed"
				})).Return(&model.Invoice{ID: "inv-42", Status: "processed"}, nil)
			},
			checkRes: func(t *testing.T, inv *model.Invoice) {
				assert.Equal(t, "inv-42", inv.ID)
			},
		},
		{
			name:       "nil payload",
			payload:    nil,
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {},
			wantErr:    ErrReaderNil,
		},
		{
			name:    "repository error",
			payload: &ingest.Payload{ID: "inv-1"},
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("CreateInvoice", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "store invoice: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := NewInvoiceService(mRepo, ingest.NewAdapter(zerolog.Nop()), zerolog.Nop())

			tt.setupMocks(mRepo)

			inv, err := svc.Ingest(ctx, tt.payload)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				tt.checkRes(t, inv)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
