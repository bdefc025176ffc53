package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/repository"
	"github.com/google/uuid"
)

// FindOrCreateBrand returns the brand with the given name, registering it on first sight.
func (r *Repository) FindOrCreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	const opn = "repository.sqlite.FindOrCreateBrand"

	name = strings.TrimSpace(name)
	brand, err := r.brandByName(ctx, name)
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, repository.ErrBrandNotFound) {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	// a concurrent writer may insert the same name first; the re-read below picks its row
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO brands (id, name, display_name, category, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING`,
		uuid.NewString(), name, name, "", toUnix(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to insert brand %q: %w", opn, name, err)
	}

	brand, err = r.brandByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	r.log.DebugContext(ctx, "Registered new brand", "op", opn, "brand", name)
	return brand, nil
}

func (r *Repository) brandByName(ctx context.Context, name string) (*models.Brand, error) {
	var (
		brand     models.Brand
		createdAt int64
	)
	err := r.q.QueryRowContext(ctx,
		"SELECT id, name, display_name, category, created_at FROM brands WHERE name = ?", name,
	).Scan(&brand.ID, &brand.Name, &brand.DisplayName, &brand.Category, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand %q: %w", name, err)
	}

	brand.CreatedAt = fromUnix(createdAt)
	return &brand, nil
}

// FindOrCreateWebsite returns the website with the given domain, registering it on first sight.
func (r *Repository) FindOrCreateWebsite(ctx context.Context, domain string) (*models.Website, error) {
	const opn = "repository.sqlite.FindOrCreateWebsite"

	domain = strings.ToLower(strings.TrimSpace(domain))
	website, err := r.websiteByDomain(ctx, domain)
	if err == nil {
		return website, nil
	}
	if !errors.Is(err, repository.ErrWebsiteNotFound) {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO websites (id, name, domain, base_url, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO NOTHING`,
		uuid.NewString(), domain, domain, "https://"+domain, toUnix(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to insert website %q: %w", opn, domain, err)
	}

	website, err = r.websiteByDomain(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	r.log.DebugContext(ctx, "Registered new website", "op", opn, "domain", domain)
	return website, nil
}

func (r *Repository) websiteByDomain(ctx context.Context, domain string) (*models.Website, error) {
	var (
		website   models.Website
		createdAt int64
	)
	err := r.q.QueryRowContext(ctx,
		"SELECT id, name, domain, base_url, created_at FROM websites WHERE domain = ?", domain,
	).Scan(&website.ID, &website.Name, &website.Domain, &website.BaseURL, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrWebsiteNotFound
		}
		return nil, fmt.Errorf("failed to get website %q: %w", domain, err)
	}

	website.CreatedAt = fromUnix(createdAt)
	return &website, nil
}
