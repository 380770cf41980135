package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"invoiceapi/internal/ingest"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrQueryRequired   = errors.New("query is required")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrReaderNil       = errors.New("reader is nil")
)

// InvoiceListResult is the service-level DTO for the invoice list endpoint.
type InvoiceListResult struct {
	Invoices []model.InvoiceRow `json:"invoices"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// InvoiceService defines the invoice store use cases.
type InvoiceService interface {
	// List returns the flattened invoice projection, filtered and sorted.
	List(ctx context.Context, q repository.ListQuery) (*InvoiceListResult, error)

	// Ingest maps an extraction payload through the ingest adapter and
	// persists the resulting invoice with all its relations.
	Ingest(ctx context.Context, payload *ingest.Payload) (*model.Invoice, error)
}

type invoiceService struct {
	repo    repository.InvoiceRepository
	adapter *ingest.Adapter
	log     zerolog.Logger
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(repo repository.InvoiceRepository, adapter *ingest.Adapter, log zerolog.Logger) InvoiceService {
	return &invoiceService{
		repo:    repo,
		adapter: adapter,
		log:     log.With().Str("component", "invoice_service").Logger(),
	}
}

func (s *invoiceService) List(ctx context.Context, q repository.ListQuery) (*InvoiceListResult, error) {
	rows, err := s.repo.ListInvoices(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	// The dashboard always works on the full bounded collection; paging
	// fields exist for API shape compatibility only.
	return &InvoiceListResult{
		Invoices: rows,
		Total:    len(rows),
		Page:     1,
		PageSize: len(rows),
	}, nil
}

func (s *invoiceService) Ingest(ctx context.Context, payload *ingest.Payload) (*model.Invoice, error) {
	if payload == nil {
		return nil, ErrReaderNil
	}
	inv := s.adapter.Invoice(payload)
	stored, err := s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("store invoice: %w", err)
	}
	s.log.Info().
		Str("invoice_id", stored.ID).
		Str("status", stored.Status).
		Int("line_items", len(stored.LineItems)).
		Msg("invoice ingested")
	return stored, nil
}
