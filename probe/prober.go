// Package probe determines the stock status of one SKU at a time by scraping
// the remote catalog's search and product pages.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aluiziolira/go-stock-tracker/config"
	"github.com/aluiziolira/go-stock-tracker/parser"
	"github.com/gocolly/colly/v2"
)

// Outcome is the result category of one probe.
type Outcome int

const (
	// InStock: the product page offered a purchasable quantity.
	InStock Outcome = iota
	// OutOfStock: the page was reachable but offered no purchasable quantity.
	OutOfStock
	// Errored: the probe failed before stock could be determined.
	Errored
)

// Result is the outcome of probing one SKU. URL is the best-known reference
// for the SKU: the product page when the search resolved one, otherwise the
// search URL itself.
type Result struct {
	SKU     string
	Outcome Outcome
	URL     string
	Err     error
}

// Prober checks a single SKU per call against the configured catalog. Probes
// are strictly sequential; each one blocks until the site responds or the
// per-request timeout fires.
type Prober struct {
	cfg       *config.Config
	host      string
	transport http.RoundTripper
	Metrics   *Metrics
}

// New builds a prober configured from cfg.
func New(cfg *config.Config) (*Prober, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	return &Prober{
		cfg:  cfg,
		host: parsed.Host,
		transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Metrics: NewMetrics(),
	}, nil
}

// SearchURL returns the catalog search URL for a SKU.
func (p *Prober) SearchURL(sku string) string {
	return fmt.Sprintf("%s/search.php?search_query=%s", p.cfg.BaseURL, url.QueryEscape(sku))
}

// Probe checks one SKU: fetch the search page, follow the first product link
// if the search resolved one, and inspect the quantity selector. A page with
// no quantity selector counts as out of stock. Exactly one attempt, no retry;
// a failure downgrades the SKU to an errored result without aborting the run.
func (p *Prober) Probe(ctx context.Context, sku string) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	searchURL := p.SearchURL(sku)
	productURL := searchURL

	if err := ctx.Err(); err != nil {
		return Result{SKU: sku, Outcome: Errored, URL: productURL, Err: Classify(err, 0)}
	}

	var (
		hasStock     bool
		followed     bool
		qtyInspected bool
		probeErr     error
	)

	c := p.newCollector()

	c.OnHTML("a.product-title", func(e *colly.HTMLElement) {
		if followed {
			return
		}
		followed = true
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		productURL = link
		if err := e.Request.Visit(link); err != nil && !errors.Is(err, colly.ErrAlreadyVisited) {
			slog.Debug("follow product link failed",
				slog.String("sku", sku),
				slog.String("url", link),
				slog.Any("error", err),
			)
		}
	})

	c.OnHTML(".ProductQty select", func(e *colly.HTMLElement) {
		// Only the first selector counts, and once a product link was
		// followed the search page's own quantity widget is irrelevant.
		if qtyInspected {
			return
		}
		if followed && e.Request.URL.String() != productURL {
			return
		}
		qtyInspected = true

		var values []string
		e.ForEach("option", func(_ int, opt *colly.HTMLElement) {
			values = append(values, opt.Attr("value"))
		})
		if parser.HasPurchasableQuantity(values) {
			hasStock = true
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
		}
		if probeErr == nil {
			probeErr = Classify(err, statusCode)
		}
	})

	start := time.Now()
	visitErr := c.Visit(searchURL)
	c.Wait()
	p.Metrics.ObserveDuration(time.Since(start))

	if probeErr == nil && visitErr != nil {
		probeErr = Classify(visitErr, 0)
	}

	if probeErr != nil {
		p.Metrics.IncProbe("error")
		var perr *Error
		if errors.As(probeErr, &perr) {
			p.Metrics.IncError(perr.Kind.metricLabel())
		}
		return Result{SKU: sku, Outcome: Errored, URL: productURL, Err: probeErr}
	}

	if hasStock {
		p.Metrics.IncProbe("in_stock")
		return Result{SKU: sku, Outcome: InStock, URL: productURL}
	}

	p.Metrics.IncProbe("out_of_stock")
	return Result{SKU: sku, Outcome: OutOfStock, URL: productURL}
}

// WithTransport overrides the HTTP transport. Tests inject a mock transport
// through this.
func (p *Prober) WithTransport(rt http.RoundTripper) {
	p.transport = rt
}

func (p *Prober) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.AllowedDomains(p.host),
		colly.UserAgent(p.cfg.UserAgent),
	)
	c.SetRequestTimeout(p.cfg.Timeout)
	c.IgnoreRobotsTxt = !p.cfg.RespectRobotsTxt
	c.WithTransport(p.transport)
	return c
}
