// Package marketdata pulls live index quotes and exchange rates used to
// refresh the report's indicator strips, and resolves stock symbol lookups
// for the related-stock fields.
package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
)

// DefaultUserAgent mimics a desktop browser; the Korean finance portals
// serve stripped pages to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// HTTPClient is the shared client for all sources.
var HTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}

// Symbol is one stock symbol lookup result.
type Symbol struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// Source provides indicator quotes and symbol search.
type Source interface {
	// Indicators returns the main and sub indicator strips, in display order.
	Indicators(ctx context.Context) (main, sub []models.MarketIndicator, err error)
	// Lookup resolves a partial stock name or code to candidate symbols.
	Lookup(ctx context.Context, query string) ([]Symbol, error)
}

// Service refreshes the live document's indicator strips from a source.
// A failed fetch leaves the document untouched and surfaces a notice.
type Service struct {
	source Source
	ctrl   *report.Controller
	logger *common.Logger
}

func NewService(source Source, ctrl *report.Controller, logger *common.Logger) *Service {
	return &Service{source: source, ctrl: ctrl, logger: logger}
}

// Refresh fetches current quotes and applies them to the live document as a
// single history entry.
func (s *Service) Refresh(ctx context.Context) error {
	main, sub, err := s.source.Indicators(ctx)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("market data refresh failed")
		s.ctrl.Notify(report.NoticeError, "시세 갱신에 실패했습니다")
		return err
	}
	if len(main) > models.MaxIndicators {
		main = main[:models.MaxIndicators]
	}
	if len(sub) > models.MaxIndicators {
		sub = sub[:models.MaxIndicators]
	}

	doc := s.ctrl.Document()
	doc.Indicators = main
	doc.SubIndicators = sub
	s.ctrl.OnChange(doc)
	s.ctrl.Notify(report.NoticeSuccess, "시세를 갱신했습니다")
	return nil
}

// Lookup passes a symbol search through to the source.
func (s *Service) Lookup(ctx context.Context, query string) ([]Symbol, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.source.Lookup(ctx, query)
}

// doGet issues a GET with browser-like headers and returns the body on 2xx.
func doGet(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html, application/json, */*")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP GET %s: status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// quoteCache is a small TTL cache so repeated refreshes within a minute do
// not hammer the portals.
type quoteCache struct {
	mu        sync.Mutex
	main, sub []models.MarketIndicator
	fetchedAt time.Time
	ttl       time.Duration
}

func (c *quoteCache) get() (main, sub []models.MarketIndicator, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.main == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, nil, false
	}
	return c.main, c.sub, true
}

func (c *quoteCache) set(main, sub []models.MarketIndicator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main, c.sub = main, sub
	c.fetchedAt = time.Now()
}

// fetchAll runs the given fetchers concurrently and returns the collected
// results in fetcher order. Any fetcher error fails the whole batch.
func fetchAll(ctx context.Context, fetchers []func(context.Context) (models.MarketIndicator, error)) ([]models.MarketIndicator, error) {
	out := make([]models.MarketIndicator, len(fetchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, fetch := range fetchers {
		g.Go(func() error {
			ind, err := fetch(gctx)
			if err != nil {
				return err
			}
			out[i] = ind
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
