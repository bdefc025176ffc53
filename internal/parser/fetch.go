package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; PriceCage/1.0)"

// ErrStatus is returned when a page answers with a non-200 status.
var ErrStatus = errors.New("unexpected status code")

// Session fetches pages of one site. It is opened per crawl run and must be closed.
type Session interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
	Close() error
}

// SessionFactory opens plain HTTP sessions, or browser sessions for sites marked render.
type SessionFactory struct {
	log       *slog.Logger
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

func NewSessionFactory(log *slog.Logger, userAgent string, timeout time.Duration) *SessionFactory {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &SessionFactory{log: log, userAgent: userAgent, timeout: timeout, transport: http.DefaultTransport}
}

// WithTransport replaces the HTTP transport used by new sessions.
func (f *SessionFactory) WithTransport(rt http.RoundTripper) *SessionFactory {
	f.transport = rt
	return f
}

func (f *SessionFactory) Open(ctx context.Context, site models.SiteConfig) (Session, error) {
	const opn = "parser.SessionFactory.Open"
	log := f.log.With("op", opn, "site", site.Name)

	if site.Render {
		log.DebugContext(ctx, "Opening browser session")
		session, err := newBrowserSession(ctx, f.userAgent, f.timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opn, err)
		}
		return session, nil
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create cookie jar: %w", opn, err)
	}

	log.DebugContext(ctx, "Opening http session")
	return &HTTPSession{
		log:       f.log,
		client:    &http.Client{Jar: jar, Transport: f.transport},
		userAgent: f.userAgent,
		timeout:   f.timeout,
	}, nil
}

// HTTPSession fetches pages with a cookie-keeping HTTP client.
type HTTPSession struct {
	log       *slog.Logger
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func (s *HTTPSession) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	const opn = "parser.HTTPSession.Fetch"

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create new request %s: %w", opn, pageURL, err)
	}

	req.Header.Add("User-Agent", s.userAgent)
	req.Header.Add("Accept-Language", "ja,en;q=0.8")

	s.log.DebugContext(ctx, "Send request", "op", opn, "method", req.Method, "URL", req.URL)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to request %s: %w", opn, pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: [%d] %s", opn, ErrStatus, res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: data cannot be parsed as HTML: %w", opn, err)
	}

	doc.Url = req.URL
	if res.Request != nil {
		doc.Url = res.Request.URL
	}
	return doc, nil
}

func (s *HTTPSession) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// BrowserSession renders pages in a headless browser owned by the session.
// Every Fetch runs in its own tab so concurrent fetches never share a page.
type BrowserSession struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	timeout       time.Duration

	newTab func(parent context.Context) (context.Context, context.CancelFunc)
	render func(ctx context.Context, pageURL string) (string, error)
}

// newBrowserSession starts the browser; tabs opened later attach to it instead of launching their own.
func newBrowserSession(ctx context.Context, userAgent string, timeout time.Duration) (*BrowserSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &BrowserSession{
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
		timeout:       timeout,
		newTab: func(parent context.Context) (context.Context, context.CancelFunc) {
			return chromedp.NewContext(parent)
		},
		render: renderPage,
	}, nil
}

func renderPage(ctx context.Context, pageURL string) (string, error) {
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func (s *BrowserSession) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	const opn = "parser.BrowserSession.Fetch"

	tabCtx, closeTab := s.newTab(s.browserCtx)
	defer closeTab()

	var (
		taskCtx context.Context
		cancel  context.CancelFunc
	)
	if s.timeout > 0 {
		taskCtx, cancel = context.WithTimeout(tabCtx, s.timeout)
	} else {
		taskCtx, cancel = context.WithCancel(tabCtx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	html, err := s.render(taskCtx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to render %s: %w", opn, pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%s: rendered page cannot be parsed as HTML: %w", opn, err)
	}
	return doc, nil
}

func (s *BrowserSession) Close() error {
	s.cancelBrowser()
	s.cancelAlloc()
	return nil
}
