package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/repository"
	"github.com/google/uuid"
)

const productColumns = `id, name, brand_id, website_id, category, description, current_price, original_price,
	currency, availability, image_urls, size_options, color_options, source_url, is_active,
	created_at, updated_at, last_scraped`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.StoredProduct, error) {
	var (
		p                            models.StoredProduct
		availability                 string
		images, sizes, colors        string
		createdAt, updatedAt, scrape int64
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.BrandID, &p.WebsiteID, &p.Category, &p.Description, &p.CurrentPrice, &p.OriginalPrice,
		&p.Currency, &availability, &images, &sizes, &colors, &p.SourceURL, &p.IsActive,
		&createdAt, &updatedAt, &scrape,
	)
	if err != nil {
		return nil, err
	}

	p.Availability = models.Availability(availability)
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	p.LastScraped = fromUnix(scrape)

	for _, field := range []struct {
		raw string
		dst *[]string
	}{{images, &p.ImageURLs}, {sizes, &p.SizeOptions}, {colors, &p.ColorOptions}} {
		if err = json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return nil, fmt.Errorf("failed to decode list column: %w", err)
		}
	}

	return &p, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// FindProduct looks a product up by its identity key.
func (r *Repository) FindProduct(ctx context.Context, websiteID, sourceURL string) (*models.StoredProduct, error) {
	const opn = "repository.sqlite.FindProduct"

	row := r.q.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE website_id = ? AND source_url = ?", websiteID, sourceURL,
	)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: failed to get product: %w", opn, err)
	}

	return product, nil
}

// UpsertProduct inserts the product or overwrites every mutable column of the row with the same
// (website_id, source_url). The stored id and created_at are never changed by an update.
func (r *Repository) UpsertProduct(ctx context.Context, product *models.StoredProduct) (*models.StoredProduct, error) {
	const opn = "repository.sqlite.UpsertProduct"

	stored := *product
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	images, err := encodeList(stored.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode image urls: %w", opn, err)
	}
	sizes, err := encodeList(stored.SizeOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode sizes: %w", opn, err)
	}
	colors, err := encodeList(stored.ColorOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode colors: %w", opn, err)
	}

	const query = `INSERT INTO products (` + productColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(website_id, source_url) DO UPDATE SET
		name = excluded.name,
		brand_id = excluded.brand_id,
		category = excluded.category,
		description = excluded.description,
		current_price = excluded.current_price,
		original_price = excluded.original_price,
		currency = excluded.currency,
		availability = excluded.availability,
		image_urls = excluded.image_urls,
		size_options = excluded.size_options,
		color_options = excluded.color_options,
		is_active = excluded.is_active,
		updated_at = excluded.updated_at,
		last_scraped = excluded.last_scraped
	RETURNING id, created_at`

	var createdAt int64
	err = r.q.QueryRowContext(ctx, query,
		stored.ID, stored.Name, stored.BrandID, stored.WebsiteID, stored.Category, stored.Description,
		stored.CurrentPrice, stored.OriginalPrice, stored.Currency, string(stored.Availability),
		images, sizes, colors, stored.SourceURL, stored.IsActive,
		toUnix(stored.CreatedAt), toUnix(stored.UpdatedAt), toUnix(stored.LastScraped),
	).Scan(&stored.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to upsert product %s: %w", opn, stored.SourceURL, err)
	}

	stored.CreatedAt = fromUnix(createdAt)
	stored.UpdatedAt = stored.UpdatedAt.UTC()
	stored.LastScraped = stored.LastScraped.UTC()
	return &stored, nil
}

// ListActiveProducts returns every product still marked active, oldest first.
func (r *Repository) ListActiveProducts(ctx context.Context) ([]models.StoredProduct, error) {
	const opn = "repository.sqlite.ListActiveProducts"

	rows, err := r.q.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE is_active = 1 ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get products: %w", opn, err)
	}
	defer rows.Close()

	var products []models.StoredProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product: %w", opn, err)
		}
		products = append(products, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return products, nil
}
