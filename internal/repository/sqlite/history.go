package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/google/uuid"
)

// AppendPriceEvent adds one observation to the product's price history.
func (r *Repository) AppendPriceEvent(ctx context.Context, event *models.PriceHistoryEvent) error {
	const opn = "repository.sqlite.AppendPriceEvent"

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO price_history (id, product_id, price, original_price, currency, availability, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.ProductID, event.Price, event.OriginalPrice, event.Currency,
		string(event.Availability), toUnix(event.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert price event for product %s: %w", opn, event.ProductID, err)
	}

	return nil
}

const eventColumns = "h.id, h.product_id, h.price, h.original_price, h.currency, h.availability, h.recorded_at"

func (r *Repository) queryEvents(ctx context.Context, query string, args ...any) ([]models.PriceHistoryEvent, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get price events: %w", err)
	}
	defer rows.Close()

	events := []models.PriceHistoryEvent{}
	for rows.Next() {
		var (
			event        models.PriceHistoryEvent
			availability string
			recordedAt   int64
		)
		err = rows.Scan(&event.ID, &event.ProductID, &event.Price, &event.OriginalPrice, &event.Currency,
			&availability, &recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price event: %w", err)
		}
		event.Availability = models.Availability(availability)
		event.RecordedAt = fromUnix(recordedAt)
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}

// QueryPriceEvents returns the events recorded within [from, to] that match filter, oldest first.
func (r *Repository) QueryPriceEvents(
	ctx context.Context,
	filter models.PriceFilter,
	from, to time.Time,
) ([]models.PriceHistoryEvent, error) {
	const opn = "repository.sqlite.QueryPriceEvents"

	var query strings.Builder
	query.WriteString("SELECT " + eventColumns + ` FROM price_history h
	JOIN products p ON p.id = h.product_id
	JOIN brands b ON b.id = p.brand_id
	WHERE h.recorded_at >= ? AND h.recorded_at <= ?`)
	args := []any{toUnix(from), toUnix(to)}

	if filter.ProductID != "" {
		query.WriteString(" AND h.product_id = ?")
		args = append(args, filter.ProductID)
	}
	if filter.Category != "" {
		query.WriteString(" AND p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Brand != "" {
		query.WriteString(" AND LOWER(b.name) = LOWER(?)")
		args = append(args, filter.Brand)
	}
	query.WriteString(" ORDER BY h.recorded_at ASC, h.rowid ASC")

	events, err := r.queryEvents(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return events, nil
}

// RecentPriceEvents returns up to limit events of one product recorded at or after since, newest first.
func (r *Repository) RecentPriceEvents(
	ctx context.Context,
	productID string,
	since time.Time,
	limit int,
) ([]models.PriceHistoryEvent, error) {
	const opn = "repository.sqlite.RecentPriceEvents"

	events, err := r.queryEvents(ctx,
		"SELECT "+eventColumns+` FROM price_history h
		WHERE h.product_id = ? AND h.recorded_at >= ?
		ORDER BY h.recorded_at DESC, h.rowid DESC LIMIT ?`,
		productID, toUnix(since), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return events, nil
}

// DeleteEventsBefore is the retention cleanup: it removes events recorded before the horizon.
func (r *Repository) DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	const opn = "repository.sqlite.DeleteEventsBefore"

	res, err := r.q.ExecContext(ctx, "DELETE FROM price_history WHERE recorded_at < ?", toUnix(before))
	if err != nil {
		return 0, fmt.Errorf("%s: failed to delete price events: %w", opn, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count deleted rows: %w", opn, err)
	}

	return deleted, nil
}

// Stats counts the stored catalogue.
func (r *Repository) Stats(ctx context.Context) (*models.Stats, error) {
	const opn = "repository.sqlite.Stats"

	var stats models.Stats
	err := r.q.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM brands),
		(SELECT COUNT(*) FROM websites),
		(SELECT COUNT(*) FROM price_history)`,
	).Scan(&stats.TotalProducts, &stats.TotalBrands, &stats.TotalWebsites, &stats.TotalPriceRecords)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count rows: %w", opn, err)
	}

	return &stats, nil
}

// SaveCrawlLog stores the outcome of crawling one website.
func (r *Repository) SaveCrawlLog(ctx context.Context, entry *models.CrawlLog) error {
	const opn = "repository.sqlite.SaveCrawlLog"

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO crawl_logs (id, website_domain, status, total_products, successful_products, failed_products,
			new_products, updated_products, start_time, end_time, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.WebsiteDomain, entry.Status, entry.TotalProducts, entry.SuccessfulProducts,
		entry.FailedProducts, entry.NewProducts, entry.UpdatedProducts,
		toUnix(entry.StartTime), toUnix(entry.EndTime), entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert crawl log for %s: %w", opn, entry.WebsiteDomain, err)
	}

	return nil
}
