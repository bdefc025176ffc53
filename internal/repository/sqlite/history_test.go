package sqlite_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Houeta/price-cage/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventPrices(events []models.PriceHistoryEvent) []string {
	prices := make([]string, 0, len(events))
	for _, e := range events {
		if !e.Price.Valid {
			prices = append(prices, "unknown")
			continue
		}
		prices = append(prices, e.Price.Decimal.String())
	}
	return prices
}

func TestPriceHistory_Integration(t *testing.T) {
	ctx := t.Context()
	repo := newFileRepo(t)

	glove := seedProduct(ctx, t, repo, "Venum", "venum.com", "https://venum.com/glove", "boxing")
	tee := seedProduct(ctx, t, repo, "Supreme", "supreme.com", "https://supreme.com/tee", "t_shirts")

	events := []models.PriceHistoryEvent{
		{ProductID: glove.ID, Price: price(100), Availability: models.InStock, RecordedAt: base},
		{ProductID: glove.ID, Price: decimal.NullDecimal{}, Availability: models.Unknown, RecordedAt: base.Add(24 * time.Hour)},
		{ProductID: glove.ID, Price: price(120), Availability: models.OutOfStock, RecordedAt: base.Add(48 * time.Hour)},
		{ProductID: tee.ID, Price: price(48), Availability: models.InStock, RecordedAt: base.Add(time.Hour)},
	}
	for i := range events {
		events[i].Currency = "JPY"
		require.NoError(t, repo.AppendPriceEvent(ctx, &events[i]))
		require.NotEmpty(t, events[i].ID)
	}

	from, to := base.Add(-time.Hour), base.Add(72*time.Hour)

	t.Run("by product, ascending", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{ProductID: glove.ID}, from, to)
		require.NoError(t, err)

		assert.Equal(t, []string{"100", "unknown", "120"}, eventPrices(got))
		assert.Equal(t, models.OutOfStock, got[2].Availability)
		assert.True(t, got[2].RecordedAt.Equal(base.Add(48*time.Hour)))
	})

	t.Run("all products", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{}, from, to)
		require.NoError(t, err)

		assert.Equal(t, []string{"100", "48", "unknown", "120"}, eventPrices(got))
	})

	t.Run("by category", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{Category: "t_shirts"}, from, to)
		require.NoError(t, err)

		assert.Equal(t, []string{"48"}, eventPrices(got))
	})

	t.Run("by brand, case-insensitive", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{Brand: "venum"}, from, to)
		require.NoError(t, err)

		assert.Len(t, got, 3)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{ProductID: glove.ID}, base.Add(24*time.Hour), base.Add(48*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, []string{"unknown", "120"}, eventPrices(got))
	})

	t.Run("empty window", func(t *testing.T) {
		got, err := repo.QueryPriceEvents(ctx, models.PriceFilter{}, base.Add(-48*time.Hour), base.Add(-24*time.Hour))
		require.NoError(t, err)

		assert.Empty(t, got)
	})

	t.Run("recent, newest first", func(t *testing.T) {
		got, err := repo.RecentPriceEvents(ctx, glove.ID, base, 2)
		require.NoError(t, err)

		assert.Equal(t, []string{"120", "unknown"}, eventPrices(got))
	})

	t.Run("recent respects since", func(t *testing.T) {
		got, err := repo.RecentPriceEvents(ctx, glove.ID, base.Add(47*time.Hour), 2)
		require.NoError(t, err)

		assert.Equal(t, []string{"120"}, eventPrices(got))
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)

		assert.Equal(t, &models.Stats{TotalProducts: 2, TotalBrands: 2, TotalWebsites: 2, TotalPriceRecords: 4}, stats)
	})
}

func TestDeleteEventsBefore_Integration(t *testing.T) {
	ctx := t.Context()
	repo := newFileRepo(t)
	glove := seedProduct(ctx, t, repo, "Venum", "venum.com", "https://venum.com/glove", "boxing")

	for i := range 3 {
		err := repo.AppendPriceEvent(ctx, &models.PriceHistoryEvent{
			ProductID:    glove.ID,
			Price:        price(int64(100 + i)),
			Currency:     "JPY",
			Availability: models.InStock,
			RecordedAt:   base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	deleted, err := repo.DeleteEventsBefore(ctx, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, err := repo.QueryPriceEvents(ctx, models.PriceFilter{}, base.AddDate(-1, 0, 0), base.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, eventPrices(left))
}

func TestAppendPriceEvent_UnknownProduct(t *testing.T) {
	repo := newFileRepo(t)

	err := repo.AppendPriceEvent(t.Context(), &models.PriceHistoryEvent{ProductID: "missing", RecordedAt: base})

	require.Error(t, err)
	assert.ErrorContains(t, err, "repository.sqlite.AppendPriceEvent")
}

func TestHistory_Failures(t *testing.T) {
	ctx := t.Context()

	t.Run("query events", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM price_history h").WillReturnError(assert.AnError)

		_, err := repo.QueryPriceEvents(ctx, models.PriceFilter{Brand: "venum"}, base, base)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "repository.sqlite.QueryPriceEvents")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("recent events rows error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		rows := sqlmock.NewRows([]string{
			"id", "product_id", "price", "original_price", "currency", "availability", "recorded_at",
		}).AddRow("e", "p", "1", nil, "JPY", "in_stock", 0).RowError(0, assert.AnError)
		mock.ExpectQuery("SELECT (.+) FROM price_history h").WithArgs("p", sqlmock.AnyArg(), 2).WillReturnRows(rows)

		_, err := repo.RecentPriceEvents(ctx, "p", base, 2)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "rows iteration error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("DELETE FROM price_history").WillReturnError(assert.AnError)

		_, err := repo.DeleteEventsBefore(ctx, base)

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stats", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

		_, err := repo.Stats(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "repository.sqlite.Stats")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveCrawlLog(t *testing.T) {
	ctx := t.Context()

	t.Run("integration", func(t *testing.T) {
		repo := newFileRepo(t)
		entry := &models.CrawlLog{
			WebsiteDomain:      "venum.com",
			Status:             "partial",
			TotalProducts:      3,
			SuccessfulProducts: 2,
			FailedProducts:     1,
			NewProducts:        2,
			StartTime:          base,
			EndTime:            base.Add(time.Minute),
			ErrorMessage:       "1 product failed",
		}

		require.NoError(t, repo.SaveCrawlLog(ctx, entry))
		require.NotEmpty(t, entry.ID)

		var status string
		var failed int
		err := repo.DB().QueryRow("SELECT status, failed_products FROM crawl_logs WHERE id = ?", entry.ID).Scan(&status, &failed)
		require.NoError(t, err)
		assert.Equal(t, "partial", status)
		assert.Equal(t, 1, failed)
	})

	t.Run("error: exec", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("INSERT INTO crawl_logs").WillReturnError(assert.AnError)

		err := repo.SaveCrawlLog(ctx, &models.CrawlLog{WebsiteDomain: "x"})

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
