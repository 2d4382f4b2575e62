package models

// List bounds enforced by the controller. Removing below a minimum or
// adding above a maximum is refused as a no-op; the UI disables the
// triggering control at a bound.
const (
	MaxIndicators = 8

	MinSectors = 1
	MaxSectors = 10

	MinThemes = 1
	MaxThemes = 8

	MinThemeStocks = 1
	MaxThemeStocks = 10

	MinSchedule = 1
	MaxSchedule = 12
)

// Default report titles per mode. Older persisted documents may carry
// retired titles; the store migrates those at load time.
const (
	TitlePreMarket = "장전 주요 이슈 브리핑"
	TitleClose     = "마감 시황 브리핑"
)

// NewTemplate builds the compiled-in starting document for a report type.
// Every call returns a fresh value with fresh entry ids.
func NewTemplate(rt ReportType) Report {
	if rt == ReportClose {
		return closeTemplate()
	}
	return preMarketTemplate()
}

func preMarketTemplate() Report {
	return Report{
		ReportType: ReportPreMarket,
		Title:      TitlePreMarket,
		Indicators: []MarketIndicator{
			{Label: "코스피", Value: "2,650.32", SubText: "+12.45 (0.47%)", Trend: TrendUp},
			{Label: "코스닥", Value: "865.10", SubText: "-3.22 (0.37%)", Trend: TrendDown},
			{Label: "원/달러", Value: "1,342.50", SubText: "+2.00", Trend: TrendUp},
		},
		SubIndicators: []MarketIndicator{
			{Label: "다우존스", Value: "39,120.88", SubText: "+0.35%", Trend: TrendUp},
			{Label: "나스닥", Value: "16,280.44", SubText: "+0.52%", Trend: TrendUp},
			{Label: "WTI", Value: "78.20", SubText: "-0.84%", Trend: TrendDown},
		},
		Sectors: []Sector{
			{
				ID:            NewEntryID(),
				Name:          "반도체",
				Sentiment:     SentimentPositive,
				Issue:         "미국 필라델피아 반도체 지수 강세, 업황 개선 기대",
				RelatedStocks: "삼성전자, SK하이닉스",
				Perspective:   "외국인 수급 유입 지속 여부 주목",
			},
		},
		Themes: []ThemeGroup{
			{
				ID:        NewEntryID(),
				Keyword:   "AI 인프라",
				Sentiment: SentimentPositive,
				Stocks: []ThemeStock{
					{Name: "종목명", Price: "0", Change: "+0.00%"},
				},
			},
		},
		Schedule: []ScheduleItem{
			{ID: NewEntryID(), Time: "08:00", Event: "주요 기업 실적 발표"},
		},
		MarketView: Section{Title: "시장 전망", Body: ""},
		USMarket:   Section{Title: "미국 증시 분석", Body: ""},
		Domestic:   Section{Title: "국내 증시 분석", Body: ""},
		Strategy:   Section{Title: "오늘의 전략", Body: ""},
		Expert:     Section{Title: "전문가 분석", Body: ""},
	}
}

func closeTemplate() Report {
	return Report{
		ReportType: ReportClose,
		Title:      TitleClose,
		Indicators: []MarketIndicator{
			{Label: "코스피", Value: "2,655.70", SubText: "+5.38 (0.20%)", Trend: TrendUp},
			{Label: "코스닥", Value: "862.04", SubText: "-3.06 (0.35%)", Trend: TrendDown},
			{Label: "원/달러", Value: "1,340.00", SubText: "-2.50", Trend: TrendDown},
		},
		SubIndicators: []MarketIndicator{
			{Label: "거래대금(코스피)", Value: "9.8조", SubText: "", Trend: TrendNeutral},
			{Label: "외국인", Value: "+2,410억", SubText: "순매수", Trend: TrendUp},
			{Label: "기관", Value: "-1,120억", SubText: "순매도", Trend: TrendDown},
		},
		Sectors: []Sector{
			{
				ID:            NewEntryID(),
				Name:          "2차전지",
				Sentiment:     SentimentFlat,
				Issue:         "수주 모멘텀 속 차익 매물 출회",
				RelatedStocks: "LG에너지솔루션, 에코프로",
				Perspective:   "단기 변동성 확대 유의",
			},
		},
		Themes: []ThemeGroup{
			{
				ID:        NewEntryID(),
				Keyword:   "금일 상한가",
				Sentiment: SentimentBullish,
				Stocks: []ThemeStock{
					{Name: "종목명", Price: "0", Change: "+30.00%"},
				},
			},
		},
		Schedule: []ScheduleItem{
			{ID: NewEntryID(), Time: "22:30", Event: "미국 주요 경제지표 발표"},
		},
		MarketView: Section{Title: "시장 총평", Body: ""},
		USMarket:   Section{Title: "미국 증시 동향", Body: ""},
		Domestic:   Section{Title: "국내 증시 마감 분석", Body: ""},
		Strategy:   Section{Title: "내일의 전략", Body: ""},
		Expert:     Section{Title: "전문가 분석", Body: ""},
	}
}

// EnsureMinimums backfills bounded lists that arrived below their minimum
// (external or corrupted sources can produce empty lists). Backfilled
// entries come from the compiled-in template for the document's mode.
func EnsureMinimums(r *Report) {
	tmpl := NewTemplate(r.ReportType)

	for len(r.Sectors) < MinSectors {
		s := tmpl.Sectors[0]
		s.ID = NewEntryID()
		r.Sectors = append(r.Sectors, s)
	}
	for len(r.Themes) < MinThemes {
		tg := tmpl.Themes[0]
		tg.ID = NewEntryID()
		tg.Stocks = append([]ThemeStock(nil), tg.Stocks...)
		r.Themes = append(r.Themes, tg)
	}
	for i := range r.Themes {
		for len(r.Themes[i].Stocks) < MinThemeStocks {
			r.Themes[i].Stocks = append(r.Themes[i].Stocks, ThemeStock{})
		}
	}
	for len(r.Schedule) < MinSchedule {
		it := tmpl.Schedule[0]
		it.ID = NewEntryID()
		r.Schedule = append(r.Schedule, it)
	}
}

// BackfillDefaults fills empty optional fields on a loaded document so the
// rest of the system always sees a fully-populated value.
func BackfillDefaults(r *Report) {
	if !r.ReportType.Valid() {
		r.ReportType = ReportPreMarket
	}
	tmpl := NewTemplate(r.ReportType)

	if r.Title == "" {
		r.Title = tmpl.Title
	}
	if r.MarketView.Title == "" {
		r.MarketView.Title = tmpl.MarketView.Title
	}
	if r.USMarket.Title == "" {
		r.USMarket.Title = tmpl.USMarket.Title
	}
	if r.Domestic.Title == "" {
		r.Domestic.Title = tmpl.Domestic.Title
	}
	if r.Strategy.Title == "" {
		r.Strategy.Title = tmpl.Strategy.Title
	}
	if r.Expert.Title == "" {
		r.Expert.Title = tmpl.Expert.Title
	}

	EnsureMinimums(r)
}
