// Package models defines the report document and its sub-entities.
// These are pure data shapes; all mutation goes through the controller.
package models

import "github.com/google/uuid"

// ReportType selects which report variant is active. It determines the
// sentiment vocabulary, the compiled-in template, and the storage namespace.
type ReportType string

const (
	ReportPreMarket ReportType = "premarket"
	ReportClose     ReportType = "close"
)

// Valid reports whether rt is a known report type.
func (rt ReportType) Valid() bool {
	return rt == ReportPreMarket || rt == ReportClose
}

// Label returns the Korean display label used in titles and export filenames.
func (rt ReportType) Label() string {
	if rt == ReportClose {
		return "마감 브리핑"
	}
	return "장전 브리핑"
}

// Trend is the direction marker on a market indicator.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// MarketIndicator is one entry in the indicator strips (KOSPI, USD/KRW, ...).
// Order within the list is display order.
type MarketIndicator struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	SubText string `json:"subText"`
	Trend   Trend  `json:"trend"`
}

// Sector is one entry in the sector table. RelatedStocks is free text,
// comma-delimited by convention.
type Sector struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Sentiment     string `json:"sentiment"`
	Issue         string `json:"issue"`
	RelatedStocks string `json:"relatedStocks"`
	Perspective   string `json:"perspective"`
}

// ThemeStock is one stock row inside a featured-stock theme.
type ThemeStock struct {
	Name   string `json:"name"`
	Price  string `json:"price"`
	Change string `json:"change"`
}

// ThemeGroup is one featured-stock theme with its nested stock list.
type ThemeGroup struct {
	ID        string       `json:"id"`
	Keyword   string       `json:"keyword"`
	Sentiment string       `json:"sentiment"`
	Stocks    []ThemeStock `json:"stocks"`
}

// ScheduleItem is one entry in the day's schedule table.
type ScheduleItem struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Event string `json:"event"`
}

// Section is a long-form analyst text block with an editable heading.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StyleOverride is a per-field cosmetic override consumed only by the
// renderer. The controller treats the map as opaque.
type StyleOverride struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// Report is the full document for one pre-market or close-market briefing.
// It is always a fully-populated value; loaders backfill missing fields.
type Report struct {
	ReportType    ReportType               `json:"reportType"`
	Title         string                   `json:"title"`
	Date          string                   `json:"date"`
	Indicators    []MarketIndicator        `json:"indicators"`
	SubIndicators []MarketIndicator        `json:"subIndicators"`
	Sectors       []Sector                 `json:"sectors"`
	Themes        []ThemeGroup             `json:"themes"`
	Schedule      []ScheduleItem           `json:"schedule"`
	MarketView    Section                  `json:"marketView"`
	USMarket      Section                  `json:"usMarket"`
	Domestic      Section                  `json:"domestic"`
	Strategy      Section                  `json:"strategy"`
	Expert        Section                  `json:"expert"`
	Styles        map[string]StyleOverride `json:"styles,omitempty"`
}

// NewEntryID returns a fresh stable id for a Sector, ThemeGroup, or
// ScheduleItem. Ids are never derived from list position; position shifts
// on reorder and delete while ids stay fixed for the document's lifetime.
func NewEntryID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the report. History snapshots and persisted
// values must never share slices or maps with the live document.
func (r Report) Clone() Report {
	out := r

	out.Indicators = append([]MarketIndicator(nil), r.Indicators...)
	out.SubIndicators = append([]MarketIndicator(nil), r.SubIndicators...)
	out.Sectors = append([]Sector(nil), r.Sectors...)
	out.Schedule = append([]ScheduleItem(nil), r.Schedule...)

	out.Themes = make([]ThemeGroup, len(r.Themes))
	for i, tg := range r.Themes {
		out.Themes[i] = tg
		out.Themes[i].Stocks = append([]ThemeStock(nil), tg.Stocks...)
	}

	if r.Styles != nil {
		out.Styles = make(map[string]StyleOverride, len(r.Styles))
		for k, v := range r.Styles {
			out.Styles[k] = v
		}
	}

	return out
}
