package monitor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/services/monitor"
	"github.com/Houeta/price-cage/test/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMonitor_RunCycle(t *testing.T) {
	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sites := []models.SiteConfig{{Name: "venum", BaseURL: "https://www.venum.com"}}
	cfg := monitor.Config{Sites: sites, AlertThreshold: 10, AlertLookback: 24 * time.Hour, RetentionDays: 90}

	alert := models.Alert{
		ProductID:     "p1",
		CurrentPrice:  decimal.NewFromInt(120),
		PreviousPrice: decimal.NewFromInt(100),
		ChangePercent: 20,
		Type:          models.PriceIncrease,
	}
	summary := models.CrawlSummary{ProductsProcessed: 12, Errors: 1}

	testCases := []struct {
		name           string
		setupMocks     func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, mNotifier *mocks.Notifier, mCleaner *mocks.HistoryCleaner)
		expectedResult *monitor.Result
		expectError    bool
	}{
		{
			name: "Success: alerts sent and history cleaned",
			setupMocks: func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, mNotifier *mocks.Notifier, mCleaner *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(summary, nil).Once()
				mAlerts.On("Generate", ctx, 10.0, 24*time.Hour).Return([]models.Alert{alert}, nil).Once()
				mNotifier.On("NotifyAlerts", ctx, []models.Alert{alert}).Return(nil).Once()
				mCleaner.On("CleanOldHistory", ctx, 90).Return(int64(4), nil).Once()
			},
			expectedResult: &monitor.Result{Crawl: summary, Alerts: []models.Alert{alert}, Deleted: 4},
		},
		{
			name: "No alerts: notifier is not called",
			setupMocks: func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, _ *mocks.Notifier, mCleaner *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(summary, nil).Once()
				mAlerts.On("Generate", ctx, 10.0, 24*time.Hour).Return([]models.Alert{}, nil).Once()
				mCleaner.On("CleanOldHistory", ctx, 90).Return(int64(0), nil).Once()
			},
			expectedResult: &monitor.Result{Crawl: summary, Alerts: []models.Alert{}},
		},
		{
			name: "Notification failure does not fail the cycle",
			setupMocks: func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, mNotifier *mocks.Notifier, mCleaner *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(summary, nil).Once()
				mAlerts.On("Generate", ctx, 10.0, 24*time.Hour).Return([]models.Alert{alert}, nil).Once()
				mNotifier.On("NotifyAlerts", ctx, mock.Anything).Return(errors.New("telegram is down")).Once()
				mCleaner.On("CleanOldHistory", ctx, 90).Return(int64(1), nil).Once()
			},
			expectedResult: &monitor.Result{Crawl: summary, Alerts: []models.Alert{alert}, Deleted: 1},
		},
		{
			name: "Error: crawl infrastructure failure",
			setupMocks: func(mCrawler *mocks.Crawler, _ *mocks.AlertGenerator, _ *mocks.Notifier, _ *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(models.CrawlSummary{}, errors.New("database is locked")).Once()
			},
			expectError: true,
		},
		{
			name: "Error: alert generation fails",
			setupMocks: func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, _ *mocks.Notifier, _ *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(summary, nil).Once()
				mAlerts.On("Generate", ctx, 10.0, 24*time.Hour).Return(nil, assert.AnError).Once()
			},
			expectError: true,
		},
		{
			name: "Error: cleanup fails",
			setupMocks: func(mCrawler *mocks.Crawler, mAlerts *mocks.AlertGenerator, _ *mocks.Notifier, mCleaner *mocks.HistoryCleaner) {
				mCrawler.On("RunCrawl", ctx, sites).Return(summary, nil).Once()
				mAlerts.On("Generate", ctx, 10.0, 24*time.Hour).Return([]models.Alert{}, nil).Once()
				mCleaner.On("CleanOldHistory", ctx, 90).Return(int64(0), assert.AnError).Once()
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockCrawler := mocks.NewCrawler(t)
			mockAlerts := mocks.NewAlertGenerator(t)
			mockNotifier := mocks.NewNotifier(t)
			mockCleaner := mocks.NewHistoryCleaner(t)
			tc.setupMocks(mockCrawler, mockAlerts, mockNotifier, mockCleaner)

			m := monitor.NewMonitor(logger, mockCrawler, mockAlerts, mockNotifier, mockCleaner, cfg)

			result, err := m.RunCycle(ctx)

			if tc.expectError {
				require.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, result)
		})
	}
}

func TestMonitor_RunCycle_WithoutNotifierAndRetention(t *testing.T) {
	ctx := t.Context()

	mockCrawler := mocks.NewCrawler(t)
	mockAlerts := mocks.NewAlertGenerator(t)
	mockCrawler.On("RunCrawl", ctx, mock.Anything).Return(models.CrawlSummary{ProductsProcessed: 1}, nil).Once()
	mockAlerts.On("Generate", ctx, 5.0, time.Hour).
		Return([]models.Alert{{ProductID: "p1", Type: models.PriceDecrease}}, nil).Once()

	m := monitor.NewMonitor(slog.New(slog.DiscardHandler), mockCrawler, mockAlerts, nil, nil,
		monitor.Config{AlertThreshold: 5, AlertLookback: time.Hour})

	result, err := m.RunCycle(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Alerts, 1)
	assert.Zero(t, result.Deleted)
}

func TestMonitor_Run_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	mockCrawler := mocks.NewCrawler(t)
	mockAlerts := mocks.NewAlertGenerator(t)
	mockCrawler.On("RunCrawl", mock.Anything, mock.Anything).Return(models.CrawlSummary{}, nil).Once()
	mockAlerts.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return([]models.Alert{}, nil).Once()

	m := monitor.NewMonitor(slog.New(slog.DiscardHandler), mockCrawler, mockAlerts, nil, nil,
		monitor.Config{Interval: time.Hour})

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestMonitor_Run_InterruptedCrawl(t *testing.T) {
	mockCrawler := mocks.NewCrawler(t)
	mockCrawler.On("RunCrawl", mock.Anything, mock.Anything).
		Return(models.CrawlSummary{}, context.Canceled).Once()

	m := monitor.NewMonitor(slog.New(slog.DiscardHandler), mockCrawler, mocks.NewAlertGenerator(t), nil, nil,
		monitor.Config{Interval: time.Minute})

	m.Run(t.Context())
}

func TestMonitor_Run_DisabledInterval(t *testing.T) {
	m := monitor.NewMonitor(slog.New(slog.DiscardHandler), mocks.NewCrawler(t), mocks.NewAlertGenerator(t), nil, nil,
		monitor.Config{})

	m.Run(t.Context())
}
