package models

import "testing"

func TestNewTemplate_Valid(t *testing.T) {
	for _, rt := range []ReportType{ReportPreMarket, ReportClose} {
		tmpl := NewTemplate(rt)

		if tmpl.ReportType != rt {
			t.Errorf("%s: wrong report type %s", rt, tmpl.ReportType)
		}
		if tmpl.Title == "" {
			t.Errorf("%s: empty title", rt)
		}
		if len(tmpl.Sectors) < MinSectors || len(tmpl.Sectors) > MaxSectors {
			t.Errorf("%s: sector count %d out of bounds", rt, len(tmpl.Sectors))
		}
		if len(tmpl.Themes) < MinThemes {
			t.Errorf("%s: theme count %d below minimum", rt, len(tmpl.Themes))
		}
		if len(tmpl.Schedule) < MinSchedule {
			t.Errorf("%s: schedule count %d below minimum", rt, len(tmpl.Schedule))
		}
		for _, s := range tmpl.Sectors {
			if s.ID == "" {
				t.Errorf("%s: sector without id", rt)
			}
			if !ValidSentiment(rt, s.Sentiment) {
				t.Errorf("%s: sector sentiment %q not in vocabulary", rt, s.Sentiment)
			}
		}
	}
}

func TestNewTemplate_FreshIDs(t *testing.T) {
	a := NewTemplate(ReportPreMarket)
	b := NewTemplate(ReportPreMarket)
	if a.Sectors[0].ID == b.Sectors[0].ID {
		t.Error("templates must not share entry ids")
	}
}

func TestClone_Independent(t *testing.T) {
	orig := NewTemplate(ReportPreMarket)
	orig.Styles = map[string]StyleOverride{"title": {Color: "#ff0000"}}

	cp := orig.Clone()
	cp.Sectors[0].Name = "바이오"
	cp.Themes[0].Stocks[0].Name = "변경"
	cp.Styles["title"] = StyleOverride{Color: "#00ff00"}

	if orig.Sectors[0].Name == "바이오" {
		t.Error("clone shares sector slice with original")
	}
	if orig.Themes[0].Stocks[0].Name == "변경" {
		t.Error("clone shares nested stock slice with original")
	}
	if orig.Styles["title"].Color != "#ff0000" {
		t.Error("clone shares styles map with original")
	}
}

func TestSentimentVocabulary(t *testing.T) {
	if ValidSentiment(ReportClose, SentimentPositive) {
		t.Error("positive is not a close-market sentiment")
	}
	if !ValidSentiment(ReportClose, SentimentBullish) {
		t.Error("bullish should be a close-market sentiment")
	}
	if !ValidSentiment(ReportPreMarket, SentimentNeutral) {
		t.Error("neutral should be a pre-market sentiment")
	}
	if DefaultSentiment(ReportClose) != SentimentFlat {
		t.Error("close default should be flat")
	}
}

func TestCopySharedFields(t *testing.T) {
	src := NewTemplate(ReportPreMarket)
	src.USMarket = Section{Title: "미국 증시", Body: "나스닥 강세"}
	src.Expert = Section{Title: "전문가", Body: "코멘트"}
	src.Schedule = []ScheduleItem{{ID: NewEntryID(), Time: "09:00", Event: "개장"}}
	src.MarketView.Body = "모드 고유 내용"

	dst := NewTemplate(ReportClose)
	CopySharedFields(&dst, &src)

	if dst.USMarket.Body != "나스닥 강세" || dst.Expert.Body != "코멘트" {
		t.Error("shared sections not carried over")
	}
	if len(dst.Schedule) != 1 || dst.Schedule[0].Event != "개장" {
		t.Error("schedule not carried over")
	}
	if dst.MarketView.Body == "모드 고유 내용" {
		t.Error("mode-specific field must not carry over")
	}

	// carried schedule must be an independent copy
	dst.Schedule[0].Event = "수정"
	if src.Schedule[0].Event == "수정" {
		t.Error("schedule carryover shares backing array")
	}
}

func TestEnsureMinimums_Backfill(t *testing.T) {
	r := Report{ReportType: ReportClose}
	EnsureMinimums(&r)

	if len(r.Sectors) != MinSectors {
		t.Errorf("expected %d sectors after backfill, got %d", MinSectors, len(r.Sectors))
	}
	if len(r.Themes) != MinThemes {
		t.Errorf("expected %d themes after backfill, got %d", MinThemes, len(r.Themes))
	}
	if len(r.Schedule) != MinSchedule {
		t.Errorf("expected %d schedule items after backfill, got %d", MinSchedule, len(r.Schedule))
	}
	for _, s := range r.Sectors {
		if s.ID == "" {
			t.Error("backfilled sector must get a fresh id")
		}
	}
}

func TestBackfillDefaults(t *testing.T) {
	r := Report{}
	BackfillDefaults(&r)

	if r.ReportType != ReportPreMarket {
		t.Errorf("unset report type should default to premarket, got %s", r.ReportType)
	}
	if r.Title == "" || r.MarketView.Title == "" || r.Expert.Title == "" {
		t.Error("empty titles should be backfilled")
	}
}
