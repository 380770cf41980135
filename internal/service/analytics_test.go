package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
	repoMocks "invoiceapi/internal/repository/mocks"
)

func TestAnalyticsService_Stats(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockInvoiceRepository)
		wantErr    bool
		checkRes   func(t *testing.T, stats *model.Stats)
	}{
		{
			name: "happy path rounds money fields",
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("Stats", ctx).Return(&model.Stats{
					TotalSpend:          1234.5049,
					InvoicesProcessed:   3,
					DocumentsUploaded:   3,
					AverageInvoiceValue: 411.50163333,
				}, nil)
			},
			checkRes: func(t *testing.T, stats *model.Stats) {
				assert.Equal(t, 1234.5, stats.TotalSpend)
				assert.Equal(t, 411.5, stats.AverageInvoiceValue)
				assert.Equal(t, 3, stats.InvoicesProcessed)
			},
		},
		{
			name: "repository error",
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("Stats", ctx).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := NewAnalyticsService(mRepo)

			tt.setupMocks(mRepo)

			stats, err := svc.Stats(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.checkRes(t, stats)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAnalyticsService_VendorSpend(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockInvoiceRepository)
	mRepo.On("Records", ctx).Return([]analytics.InvoiceRecord{
		{ID: "1", VendorName: "Acme GmbH", Amount: 300},
		{ID: "2", VendorName: "Beta AG", Amount: 700},
	}, nil)

	svc := NewAnalyticsService(mRepo)

	spend, err := svc.VendorSpend(ctx)
	assert.NoError(t, err)
	assert.Len(t, spend, 2)
	assert.Equal(t, "Beta AG", spend[0].Name)
	assert.Equal(t, 70.0, spend[0].Percentage)
	mRepo.AssertExpectations(t)
}

func TestAnalyticsService_CategorySpend(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockInvoiceRepository)
	mRepo.On("Records", ctx).Return([]analytics.InvoiceRecord{
		{ID: "1", Amount: 100, LineItemDescriptions: []string{"Software license"}},
		{ID: "2", Amount: 50, LineItemDescriptions: []string{"Marketing campaign"}},
	}, nil)

	svc := NewAnalyticsService(mRepo)

	breakdown, err := svc.CategorySpend(ctx)
	assert.NoError(t, err)
	assert.Len(t, breakdown, 2)
	mRepo.AssertExpectations(t)
}

func TestAnalyticsService_MonthlyTrend(t *testing.T) {
	ctx := context.Background()

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)

	mRepo := new(repoMocks.MockInvoiceRepository)
	mRepo.On("Records", ctx).Return([]analytics.InvoiceRecord{
		{ID: "1", Amount: 100, InvoiceDate: &feb},
		{ID: "2", Amount: 200, InvoiceDate: &jan},
	}, nil)

	svc := NewAnalyticsService(mRepo)

	trend, err := svc.MonthlyTrend(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []analytics.MonthlyTrend{
		{Month: "2024-01", Count: 1, Spend: 200},
		{Month: "2024-02", Count: 1, Spend: 100},
	}, trend)
	mRepo.AssertExpectations(t)
}

func TestAnalyticsService_CashOutflow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	soon := now.Add(3 * 24 * time.Hour)
	later := now.Add(45 * 24 * time.Hour)

	records := []analytics.InvoiceRecord{
		{ID: "1", Amount: 100, DueDate: &soon},
		{ID: "2", Amount: 250, DueDate: &later},
	}

	tests := []struct {
		name       string
		mode       ForecastMode
		setupMocks func(mRepo *repoMocks.MockInvoiceRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *CashOutflowResult)
	}{
		{
			name: "month mode groups by due month",
			mode: ForecastByMonth,
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("Records", ctx).Return(records, nil)
			},
			checkRes: func(t *testing.T, res *CashOutflowResult) {
				assert.Nil(t, res.Buckets)
				assert.Equal(t, []analytics.CashOutflow{
					{Date: "2024-06", Amount: 100},
					{Date: "2024-07", Amount: 250},
				}, res.Months)
			},
		},
		{
			name: "relative mode always returns four buckets",
			mode: ForecastRelative,
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("Records", ctx).Return(records, nil)
			},
			checkRes: func(t *testing.T, res *CashOutflowResult) {
				assert.Nil(t, res.Months)
				assert.Equal(t, []analytics.OutflowBucket{
					{Period: "0-7 days", Amount: 100},
					{Period: "8-30 days", Amount: 0},
					{Period: "31-60 days", Amount: 250},
					{Period: "60+ days", Amount: 0},
				}, res.Buckets)
			},
		},
		{
			name: "repository error",
			mode: ForecastByMonth,
			setupMocks: func(mRepo *repoMocks.MockInvoiceRepository) {
				mRepo.On("Records", ctx).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInvoiceRepository)
			svc := &analyticsService{repo: mRepo, now: func() time.Time { return now }}

			tt.setupMocks(mRepo)

			res, err := svc.CashOutflow(ctx, tt.mode)

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
