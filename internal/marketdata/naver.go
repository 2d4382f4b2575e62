package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

const (
	naverFinanceURL     = "https://finance.naver.com"
	naverMarketIndexURL = "https://finance.naver.com/marketindex/"
	naverWorldURL       = "https://finance.naver.com/world/"
	naverACURL          = "https://ac.finance.naver.com/ac"
)

// Naver scrapes finance.naver.com for domestic indices, the won/dollar
// rate, and overseas index closes.
type Naver struct {
	cache quoteCache
}

func NewNaver() *Naver {
	return &Naver{cache: quoteCache{ttl: time.Minute}}
}

// Indicators fetches the main strip (KOSPI, KOSDAQ, USD/KRW) and the sub
// strip (Dow, Nasdaq, S&P 500) concurrently.
func (n *Naver) Indicators(ctx context.Context) ([]models.MarketIndicator, []models.MarketIndicator, error) {
	if main, sub, ok := n.cache.get(); ok {
		return main, sub, nil
	}

	main, err := fetchAll(ctx, []func(context.Context) (models.MarketIndicator, error){
		func(ctx context.Context) (models.MarketIndicator, error) { return n.fetchIndex(ctx, "KOSPI", "코스피") },
		func(ctx context.Context) (models.MarketIndicator, error) { return n.fetchIndex(ctx, "KOSDAQ", "코스닥") },
		n.fetchExchangeRate,
	})
	if err != nil {
		return nil, nil, err
	}

	sub, err := fetchAll(ctx, []func(context.Context) (models.MarketIndicator, error){
		func(ctx context.Context) (models.MarketIndicator, error) { return n.fetchWorldIndex(ctx, "DJI@DJI", "다우존스") },
		func(ctx context.Context) (models.MarketIndicator, error) { return n.fetchWorldIndex(ctx, "NAS@IXIC", "나스닥") },
		func(ctx context.Context) (models.MarketIndicator, error) { return n.fetchWorldIndex(ctx, "SPI@SPX", "S&P500") },
	})
	if err != nil {
		return nil, nil, err
	}

	n.cache.set(main, sub)
	return main, sub, nil
}

func (n *Naver) fetchIndex(ctx context.Context, code, label string) (models.MarketIndicator, error) {
	u := fmt.Sprintf("%s/sise/sise_index.naver?code=%s", naverFinanceURL, code)
	body, err := doGet(ctx, u)
	if err != nil {
		return models.MarketIndicator{}, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.MarketIndicator{}, fmt.Errorf("parse %s page: %w", code, err)
	}
	return parseIndexPage(doc, label)
}

func (n *Naver) fetchExchangeRate(ctx context.Context) (models.MarketIndicator, error) {
	body, err := doGet(ctx, naverMarketIndexURL)
	if err != nil {
		return models.MarketIndicator{}, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.MarketIndicator{}, fmt.Errorf("parse market index page: %w", err)
	}
	return parseExchangeRate(doc)
}

func (n *Naver) fetchWorldIndex(ctx context.Context, symbol, label string) (models.MarketIndicator, error) {
	u := fmt.Sprintf("%s/world/sise.naver?symbol=%s", naverFinanceURL, url.QueryEscape(symbol))
	body, err := doGet(ctx, u)
	if err != nil {
		return models.MarketIndicator{}, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.MarketIndicator{}, fmt.Errorf("parse %s page: %w", symbol, err)
	}
	return parseWorldIndexPage(doc, label)
}

// Lookup queries the Naver finance autocomplete endpoint.
func (n *Naver) Lookup(ctx context.Context, query string) ([]Symbol, error) {
	u := fmt.Sprintf("%s?q=%s&st=111&r_format=json&t_koreng=1", naverACURL, url.QueryEscape(query))
	body, err := doGet(ctx, u)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload struct {
		Items [][][]string `json:"items"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}
	return parseLookupItems(payload.Items), nil
}

// --- Parsers, separated from transport so they test against static HTML ---

// parseIndexPage reads the quote head of a domestic index page
// (sise_index.naver): current value in #now_value, change and rate in
// #change_value_and_rate.
func parseIndexPage(doc *goquery.Document, label string) (models.MarketIndicator, error) {
	value := strings.TrimSpace(doc.Find("#now_value").First().Text())
	if value == "" {
		return models.MarketIndicator{}, fmt.Errorf("%s: quote value not found", label)
	}

	change := doc.Find("#change_value_and_rate").First()
	subText := squashSpaces(change.Text())

	return models.MarketIndicator{
		Label:   label,
		Value:   value,
		SubText: subText,
		Trend:   trendFromClass(change),
	}, nil
}

// parseExchangeRate reads the USD/KRW block from the market index page.
func parseExchangeRate(doc *goquery.Document) (models.MarketIndicator, error) {
	block := doc.Find("#exchangeList .usd, .market1 .head_info").First()
	value := strings.TrimSpace(block.Find(".value").First().Text())
	if value == "" {
		return models.MarketIndicator{}, fmt.Errorf("원/달러: quote value not found")
	}

	change := strings.TrimSpace(block.Find(".change").First().Text())
	blind := strings.TrimSpace(block.Find(".blind").Last().Text())

	trend := models.TrendNeutral
	switch blind {
	case "상승":
		trend = models.TrendUp
	case "하락":
		trend = models.TrendDown
	}

	sub := change
	if trend == models.TrendUp {
		sub = "+" + change
	} else if trend == models.TrendDown {
		sub = "-" + change
	}

	return models.MarketIndicator{
		Label:   "원/달러",
		Value:   value,
		SubText: sub,
		Trend:   trend,
	}, nil
}

// parseWorldIndexPage reads the quote head of an overseas index page
// (world/sise.naver): value in .no_today, change block in .no_exday.
func parseWorldIndexPage(doc *goquery.Document, label string) (models.MarketIndicator, error) {
	value := squashSpaces(doc.Find(".no_today em").First().Text())
	if value == "" {
		return models.MarketIndicator{}, fmt.Errorf("%s: quote value not found", label)
	}

	exday := doc.Find(".no_exday").First()
	subText := squashSpaces(exday.Find("em").Last().Text())

	return models.MarketIndicator{
		Label:   label,
		Value:   value,
		SubText: subText,
		Trend:   trendFromClass(exday.Find("em").First()),
	}, nil
}

func parseLookupItems(items [][][]string) []Symbol {
	var out []Symbol
	for _, group := range items {
		for _, item := range group {
			// autocomplete rows are [code, name, market, ...]
			if len(item) < 2 {
				continue
			}
			sym := Symbol{Code: item[0], Name: item[1]}
			if len(item) > 2 {
				sym.Market = item[2]
			}
			out = append(out, sym)
		}
	}
	return out
}

// trendFromClass maps Naver's point_up/point_dn quote classes to a trend.
func trendFromClass(sel *goquery.Selection) models.Trend {
	class, _ := sel.Attr("class")
	switch {
	case strings.Contains(class, "up"):
		return models.TrendUp
	case strings.Contains(class, "dn"), strings.Contains(class, "down"):
		return models.TrendDown
	}
	return models.TrendNeutral
}

func squashSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
