package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, q repository.ListQuery) ([]model.InvoiceRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceRow), args.Error(1)
}

func (m *MockInvoiceRepository) Records(ctx context.Context) ([]analytics.InvoiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.InvoiceRecord), args.Error(1)
}

func (m *MockInvoiceRepository) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockInvoiceRepository) SumByStatus(ctx context.Context, status string) (*repository.StatusCount, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StatusCount), args.Error(1)
}

func (m *MockInvoiceRepository) RecentInvoices(ctx context.Context, limit int) ([]model.InvoiceRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceRow), args.Error(1)
}

func (m *MockInvoiceRepository) AttachDocument(ctx context.Context, doc *model.InvoiceDocument) (*model.InvoiceDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceDocument), args.Error(1)
}

func (m *MockInvoiceRepository) FindDocument(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceDocument), args.Error(1)
}

func (m *MockInvoiceRepository) InvoiceExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
