package sqlite

import (
	"context"
	"time"

	"github.com/Houeta/price-cage/internal/models"
)

// Store is the part of the storage contract a single merge runs against.
type Store interface {
	FindOrCreateBrand(ctx context.Context, name string) (*models.Brand, error)
	FindOrCreateWebsite(ctx context.Context, domain string) (*models.Website, error)
	// FindProduct returns repository.ErrProductNotFound when no product has that key.
	FindProduct(ctx context.Context, websiteID, sourceURL string) (*models.StoredProduct, error)
	// UpsertProduct inserts the product or fully updates the row with the same (website, source URL).
	// The returned copy carries the stored id and created_at.
	UpsertProduct(ctx context.Context, product *models.StoredProduct) (*models.StoredProduct, error)
	AppendPriceEvent(ctx context.Context, event *models.PriceHistoryEvent) error
}

// CatalogRepository is used by the merge engine.
type CatalogRepository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// HistoryRepository is used by the trend analyzer.
type HistoryRepository interface {
	// QueryPriceEvents returns events recorded within [from, to], oldest first.
	QueryPriceEvents(ctx context.Context, filter models.PriceFilter, from, to time.Time) ([]models.PriceHistoryEvent, error)
}

// AlertRepository is used by the alert generator.
type AlertRepository interface {
	ListActiveProducts(ctx context.Context) ([]models.StoredProduct, error)
	// RecentPriceEvents returns at most limit events recorded at or after since, newest first.
	RecentPriceEvents(ctx context.Context, productID string, since time.Time, limit int) ([]models.PriceHistoryEvent, error)
}

// CrawlLogRepository stores per-website crawl results.
type CrawlLogRepository interface {
	SaveCrawlLog(ctx context.Context, entry *models.CrawlLog) error
}

// SubscriptionRepository keeps the chats that receive price alerts.
type SubscriptionRepository interface {
	SubscribeChat(ctx context.Context, chatID int64) (bool, error)
	UnsubscribeChat(ctx context.Context, chatID int64) (bool, error)
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}
