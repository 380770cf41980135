package service

import (
	"context"
	"fmt"
	"time"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
)

// ForecastMode selects the cash outflow bucketing strategy.
type ForecastMode string

const (
	// ForecastByMonth groups amounts due per calendar month (primary).
	ForecastByMonth ForecastMode = "month"
	// ForecastRelative groups amounts due into day-offset ranges from now.
	ForecastRelative ForecastMode = "relative"
)

// CashOutflowResult is the union of the two forecast variants; exactly one
// field is populated depending on the requested mode.
type CashOutflowResult struct {
	Months  []analytics.CashOutflow   `json:"months,omitempty"`
	Buckets []analytics.OutflowBucket `json:"buckets,omitempty"`
}

// AnalyticsService exposes the dashboard's derived views. Every call loads
// a fresh snapshot of the invoice collection and recomputes from scratch;
// concurrent requests never share aggregation state.
type AnalyticsService interface {
	Stats(ctx context.Context) (*model.Stats, error)
	VendorSpend(ctx context.Context) ([]analytics.VendorSpend, error)
	CategorySpend(ctx context.Context) ([]analytics.CategorySpend, error)
	MonthlyTrend(ctx context.Context) ([]analytics.MonthlyTrend, error)
	CashOutflow(ctx context.Context, mode ForecastMode) (*CashOutflowResult, error)
}

type analyticsService struct {
	repo repository.InvoiceRepository
	now  func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService on top of the
// repository.
func NewAnalyticsService(repo repository.InvoiceRepository) AnalyticsService {
	return &analyticsService{repo: repo, now: time.Now}
}

func (s *analyticsService) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	stats.TotalSpend = analytics.Round2(stats.TotalSpend)
	stats.AverageInvoiceValue = analytics.Round2(stats.AverageInvoiceValue)
	return stats, nil
}

func (s *analyticsService) VendorSpend(ctx context.Context) ([]analytics.VendorSpend, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return analytics.TopVendorSpend(records), nil
}

func (s *analyticsService) CategorySpend(ctx context.Context) ([]analytics.CategorySpend, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return analytics.CategorySpendBreakdown(records), nil
}

func (s *analyticsService) MonthlyTrend(ctx context.Context) ([]analytics.MonthlyTrend, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return analytics.MonthlyInvoiceTrend(records), nil
}

func (s *analyticsService) CashOutflow(ctx context.Context, mode ForecastMode) (*CashOutflowResult, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if mode == ForecastRelative {
		return &CashOutflowResult{Buckets: analytics.CashOutflowBuckets(records, s.now())}, nil
	}
	return &CashOutflowResult{Months: analytics.CashOutflowForecast(records)}, nil
}
