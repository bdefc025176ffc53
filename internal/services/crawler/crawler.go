package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/monitoring"
	"github.com/Houeta/price-cage/internal/parser"
	"github.com/Houeta/price-cage/internal/record"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
	"github.com/Houeta/price-cage/internal/services/merger"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Crawl log statuses.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Merger stores one built record.
type Merger interface {
	Merge(ctx context.Context, record *models.ProductRecord) (merger.Outcome, error)
}

// SessionOpener opens the fetch session used for one site run.
type SessionOpener interface {
	Open(ctx context.Context, site models.SiteConfig) (parser.Session, error)
}

// Config tunes a crawl run.
type Config struct {
	// Delay is the minimum spacing between any two page fetches of the process.
	Delay time.Duration
	// Concurrency bounds the product pages fetched at once. Values below 1 mean sequential.
	Concurrency int
}

// Crawler runs extraction and merge over a set of site configurations.
type Crawler struct {
	log         *slog.Logger
	opener      SessionOpener
	merger      Merger
	logs        sqlite.CrawlLogRepository
	metrics     *monitoring.Metrics
	limiter     *rate.Limiter
	concurrency int
	now         func() time.Time
}

// NewCrawler creates a new Crawler instance.
func NewCrawler(
	log *slog.Logger,
	opener SessionOpener,
	merger Merger,
	logs sqlite.CrawlLogRepository,
	metrics *monitoring.Metrics,
	cfg Config,
) *Crawler {
	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Crawler{
		log:         log,
		opener:      opener,
		merger:      merger,
		logs:        logs,
		metrics:     metrics,
		limiter:     rate.NewLimiter(limit, 1),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (c *Crawler) WithClock(now func() time.Time) *Crawler {
	c.now = now
	return c
}

// RunCrawl crawls every site in order. Per-page failures are counted in the summary; only a failure
// to persist crawl logs or a cancelled context is returned as an error. Products merged before the
// error stay stored.
func (c *Crawler) RunCrawl(ctx context.Context, sites []models.SiteConfig) (models.CrawlSummary, error) {
	const opn = "crawler.RunCrawl"
	log := c.log.With("op", opn)

	var summary models.CrawlSummary
	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("%s: crawl interrupted before %s: %w", opn, site.Name, err)
		}

		entry, errs := c.crawlSite(ctx, site)
		summary.ProductsProcessed += entry.SuccessfulProducts
		summary.Errors += errs

		// the log row is written even when the run was cancelled mid-site
		if err := c.logs.SaveCrawlLog(context.WithoutCancel(ctx), entry); err != nil {
			return summary, fmt.Errorf("%s: failed to save crawl log: %w", opn, err)
		}
	}

	log.InfoContext(ctx, "Crawl finished",
		"sites", len(sites),
		"products", summary.ProductsProcessed,
		"errors", summary.Errors,
	)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("%s: crawl interrupted: %w", opn, err)
	}

	return summary, nil
}

// tally is shared by the product workers of one site.
type tally struct {
	mu    sync.Mutex
	entry *models.CrawlLog
}

func (t *tally) add(outcome merger.Outcome, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entry.TotalProducts++
	if err != nil {
		t.entry.FailedProducts++
		return
	}
	t.entry.SuccessfulProducts++
	switch outcome {
	case merger.OutcomeCreated:
		t.entry.NewProducts++
	case merger.OutcomeUpdated:
		t.entry.UpdatedProducts++
	}
}

// crawlSite returns the crawl log of the site and the number of errors it produced.
func (c *Crawler) crawlSite(ctx context.Context, site models.SiteConfig) (*models.CrawlLog, int) {
	const opn = "crawler.crawlSite"
	log := c.log.With("op", opn, "site", site.Name)

	start := c.now().UTC()
	domain, err := merger.Domain(site.BaseURL)
	if err != nil {
		domain = site.Name
	}
	entry := &models.CrawlLog{WebsiteDomain: domain, StartTime: start}
	defer func() {
		entry.EndTime = c.now().UTC()
		c.metrics.ObserveCrawl(site.Name, entry.EndTime.Sub(start).Seconds())
	}()

	siteParser, err := parser.New(site)
	if err != nil {
		log.ErrorContext(ctx, "Unsupported site configuration", "error", err)
		entry.Status, entry.ErrorMessage = StatusFailed, err.Error()
		return entry, 1
	}

	session, err := c.opener.Open(ctx, site)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open fetch session", "error", err)
		entry.Status, entry.ErrorMessage = StatusFailed, err.Error()
		return entry, 1
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.WarnContext(ctx, "Failed to close fetch session", "error", cerr)
		}
	}()

	var (
		counts     = &tally{entry: entry}
		seen       = make(map[string]struct{})
		pageErrors []string
		cancelled  bool
	)

	for _, categoryURL := range siteParser.CategoryURLs() {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		doc, err := c.fetch(ctx, session, site.Name, categoryURL)
		if err != nil {
			log.WarnContext(ctx, "Failed to fetch category page", "url", categoryURL, "error", err)
			pageErrors = append(pageErrors, err.Error())
			continue
		}

		var links []string
		for _, link := range siteParser.ParseProductList(doc, categoryURL) {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
		log.DebugContext(ctx, "Category parsed", "url", categoryURL, "products", len(links))

		var g errgroup.Group
		g.SetLimit(c.concurrency)
		for _, link := range links {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				counts.add(c.crawlProduct(ctx, session, siteParser, site, link))
				return nil
			})
		}
		_ = g.Wait()
	}

	if ctx.Err() != nil {
		cancelled = true
	}

	switch {
	case entry.SuccessfulProducts == 0 && (entry.FailedProducts > 0 || len(pageErrors) > 0):
		entry.Status = StatusFailed
	case entry.FailedProducts > 0 || len(pageErrors) > 0 || cancelled:
		entry.Status = StatusPartial
	default:
		entry.Status = StatusSuccess
	}

	errs := entry.FailedProducts + len(pageErrors)
	if cancelled {
		pageErrors = append(pageErrors, context.Cause(ctx).Error())
	}
	entry.ErrorMessage = strings.Join(pageErrors, "; ")

	log.InfoContext(ctx, "Site crawled",
		"status", entry.Status,
		"total", entry.TotalProducts,
		"created", entry.NewProducts,
		"updated", entry.UpdatedProducts,
		"failed", entry.FailedProducts,
	)

	return entry, errs
}

func (c *Crawler) crawlProduct(
	ctx context.Context,
	session parser.Session,
	siteParser parser.SiteParser,
	site models.SiteConfig,
	productURL string,
) (merger.Outcome, error) {
	log := c.log.With("op", "crawler.crawlProduct", "site", site.Name, "url", productURL)

	doc, err := c.fetch(ctx, session, site.Name, productURL)
	if err != nil {
		log.WarnContext(ctx, "Failed to fetch product page", "error", err)
		return "", err
	}

	raw, err := siteParser.ParseProductDetail(doc, productURL)
	if err != nil {
		return "", c.extractionFailed(ctx, log, site.Name, err)
	}

	rec, err := record.Build(raw, site, c.now())
	if err != nil {
		return "", c.extractionFailed(ctx, log, site.Name, err)
	}
	c.metrics.IncExtraction(site.Name, "ok")

	outcome, err := c.merger.Merge(ctx, rec)
	if err != nil {
		log.WarnContext(ctx, "Failed to merge product", "error", err)
		return "", err
	}

	return outcome, nil
}

func (c *Crawler) extractionFailed(ctx context.Context, log *slog.Logger, siteName string, err error) error {
	c.metrics.IncExtraction(siteName, "error")
	if errors.Is(err, parser.ErrExtraction) || errors.Is(err, record.ErrEmptyName) {
		log.InfoContext(ctx, "Page yielded no product", "reason", err)
	} else {
		log.WarnContext(ctx, "Failed to extract product", "error", err)
	}

	return err
}

// fetch waits for the shared limiter before every request.
func (c *Crawler) fetch(ctx context.Context, session parser.Session, siteName, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	doc, err := session.Fetch(ctx, pageURL)
	if err != nil {
		c.metrics.IncPage(siteName, "error")
		return nil, err
	}
	c.metrics.IncPage(siteName, "ok")

	return doc, nil
}
