package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/chat"
	"invoiceapi/internal/ingest"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
	"invoiceapi/internal/service"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) List(ctx context.Context, q repository.ListQuery) (*service.InvoiceListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceListResult), args.Error(1)
}

func (m *MockInvoiceService) Ingest(ctx context.Context, payload *ingest.Payload) (*model.Invoice, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockAnalyticsService) VendorSpend(ctx context.Context) ([]analytics.VendorSpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.VendorSpend), args.Error(1)
}

func (m *MockAnalyticsService) CategorySpend(ctx context.Context) ([]analytics.CategorySpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CategorySpend), args.Error(1)
}

func (m *MockAnalyticsService) MonthlyTrend(ctx context.Context) ([]analytics.MonthlyTrend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.MonthlyTrend), args.Error(1)
}

func (m *MockAnalyticsService) CashOutflow(ctx context.Context, mode service.ForecastMode) (*service.CashOutflowResult, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CashOutflowResult), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Ask(ctx context.Context, query string) (*chat.Answer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Answer), args.Error(1)
}

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, invoiceID string, r io.Reader, filename, contentType string, size int64) (*model.InvoiceDocument, error) {
	args := m.Called(ctx, invoiceID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceDocument), args.Error(1)
}

func (m *MockAttachmentService) DownloadURL(ctx context.Context, invoiceID string) (string, error) {
	args := m.Called(ctx, invoiceID)
	return args.String(0), args.Error(1)
}
