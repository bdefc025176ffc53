package merger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/monitoring"
	"github.com/Houeta/price-cage/internal/repository"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
)

// Outcome tells whether a merge inserted a new product or updated a stored one.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

const unknownBrand = "unknown"

var (
	// ErrMerge wraps every storage failure of a single merge.
	ErrMerge = errors.New("merge failed")
	// ErrInvalidSourceURL is returned for records whose source URL has no host.
	ErrInvalidSourceURL = errors.New("source url has no host")
)

// Merger reconciles freshly built records with stored products.
type Merger struct {
	log     *slog.Logger
	repo    sqlite.CatalogRepository
	metrics *monitoring.Metrics
	now     func() time.Time
}

type Interface interface {
	Merge(ctx context.Context, record *models.ProductRecord) (Outcome, error)
	ProcessBatch(ctx context.Context, records []*models.ProductRecord) models.MergeSummary
}

// NewMerger creates a new Merger instance.
func NewMerger(log *slog.Logger, repo sqlite.CatalogRepository, metrics *monitoring.Metrics) *Merger {
	return &Merger{log: log, repo: repo, metrics: metrics, now: time.Now}
}

// WithClock replaces the time source.
func (m *Merger) WithClock(now func() time.Time) *Merger {
	m.now = now
	return m
}

// Merge inserts or updates the product identified by (website, source URL) and appends one
// price history event. All writes happen in one transaction; on error nothing is written.
func (m *Merger) Merge(ctx context.Context, record *models.ProductRecord) (Outcome, error) {
	const opn = "merger.Merge"
	log := m.log.With("op", opn, "url", record.SourceURL)

	domain, err := Domain(record.SourceURL)
	if err != nil {
		m.metrics.IncMerge("error")
		return "", fmt.Errorf("%s: %w: %w", opn, ErrMerge, err)
	}

	var outcome Outcome
	err = m.repo.RunInTx(ctx, func(ctx context.Context, tx sqlite.Store) error {
		brandName := record.Brand
		if strings.TrimSpace(brandName) == "" {
			brandName = unknownBrand
		}

		// 1. Brand
		brand, err := tx.FindOrCreateBrand(ctx, brandName)
		if err != nil {
			return fmt.Errorf("failed to resolve brand: %w", err)
		}

		// 2. Website
		website, err := tx.FindOrCreateWebsite(ctx, domain)
		if err != nil {
			return fmt.Errorf("failed to resolve website: %w", err)
		}

		// 3. Existing product
		existing, err := tx.FindProduct(ctx, website.ID, record.SourceURL)
		if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("failed to find product: %w", err)
		}

		// event times of one product never go backwards
		now := m.now().UTC()
		if existing != nil && now.Before(existing.LastScraped) {
			now = existing.LastScraped
		}

		product := fromRecord(record, brand.ID, website.ID, now)
		outcome = OutcomeCreated
		if existing != nil {
			product.ID = existing.ID
			product.CreatedAt = existing.CreatedAt
			outcome = OutcomeUpdated
		}

		// 4/5. Insert or overwrite
		stored, err := tx.UpsertProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to store product: %w", err)
		}

		err = tx.AppendPriceEvent(ctx, &models.PriceHistoryEvent{
			ProductID:     stored.ID,
			Price:         record.Price,
			OriginalPrice: record.OriginalPrice,
			Currency:      record.Currency,
			Availability:  record.Availability,
			RecordedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to append price event: %w", err)
		}

		return nil
	})
	if err != nil {
		m.metrics.IncMerge("error")
		return "", fmt.Errorf("%s: %w: %w", opn, ErrMerge, err)
	}

	m.metrics.IncMerge(string(outcome))
	log.DebugContext(ctx, "Merged product", "outcome", outcome)

	return outcome, nil
}

// ProcessBatch merges records one by one. A failing record is counted and skipped.
func (m *Merger) ProcessBatch(ctx context.Context, records []*models.ProductRecord) models.MergeSummary {
	const opn = "merger.ProcessBatch"
	log := m.log.With("op", opn)

	var summary models.MergeSummary
	for _, record := range records {
		summary.Processed++

		outcome, err := m.Merge(ctx, record)
		if err != nil {
			summary.Errors++
			log.WarnContext(ctx, "Failed to merge record", "url", record.SourceURL, "error", err)
			continue
		}

		switch outcome {
		case OutcomeCreated:
			summary.Created++
		case OutcomeUpdated:
			summary.Updated++
		}
	}

	log.InfoContext(ctx, "Batch merged",
		"processed", summary.Processed,
		"created", summary.Created,
		"updated", summary.Updated,
		"errors", summary.Errors,
	)

	return summary
}

// CleanOldHistory removes price events older than keepDays.
func (m *Merger) CleanOldHistory(ctx context.Context, keepDays int) (int64, error) {
	const opn = "merger.CleanOldHistory"

	if keepDays <= 0 {
		return 0, nil
	}

	horizon := m.now().UTC().AddDate(0, 0, -keepDays)
	deleted, err := m.repo.DeleteEventsBefore(ctx, horizon)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	m.metrics.AddDeleted(deleted)
	m.log.InfoContext(ctx, "Old price history removed", "op", opn, "deleted", deleted, "horizon", horizon)

	return deleted, nil
}

// Stats returns storage totals.
func (m *Merger) Stats(ctx context.Context) (*models.Stats, error) {
	const opn = "merger.Stats"

	stats, err := m.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return stats, nil
}

// Domain returns the lower-cased host of a source URL.
func Domain(sourceURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSourceURL, err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSourceURL, sourceURL)
	}

	return host, nil
}

func fromRecord(record *models.ProductRecord, brandID, websiteID string, now time.Time) *models.StoredProduct {
	return &models.StoredProduct{
		Name:          record.Name,
		BrandID:       brandID,
		WebsiteID:     websiteID,
		Category:      record.Category,
		Description:   record.Description,
		CurrentPrice:  record.Price,
		OriginalPrice: record.OriginalPrice,
		Currency:      record.Currency,
		Availability:  record.Availability,
		ImageURLs:     record.ImageURLs,
		SizeOptions:   record.SizeOptions,
		ColorOptions:  record.ColorOptions,
		SourceURL:     record.SourceURL,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastScraped:   now,
	}
}
