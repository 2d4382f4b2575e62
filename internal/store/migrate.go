package store

import "github.com/tlsguqwn-ship-it/rising-report/internal/models"

// legacyTitles maps retired default report titles to their current
// equivalents. Detection is by literal match: a title the user edited is
// their own text and must pass through untouched.
var legacyTitles = map[string]string{
	"모닝 주요 이슈":  models.TitlePreMarket,
	"장전 시황 브리핑": models.TitlePreMarket,
	"장 마감 시황":   models.TitleClose,
	"마감 브리핑":    models.TitleClose,
}

// legacyCloseSentiments remaps the retired 3-value close-market vocabulary.
// Close-market documents saved before the vocabulary split still carry
// pre-market labels.
var legacyCloseSentiments = map[string]string{
	models.SentimentPositive: models.SentimentBullish,
	models.SentimentNegative: models.SentimentBearish,
	models.SentimentNeutral:  models.SentimentFlat,
}

// Migrate rewrites known-obsolete values on a loaded document in place.
// It is pure and idempotent: running it twice produces the same result as
// once. Labels matching neither the old nor the new vocabulary are left
// as-is for the user to notice; guessing risks worse data loss.
func Migrate(r *models.Report) {
	if current, ok := legacyTitles[r.Title]; ok {
		r.Title = current
	}

	if r.ReportType != models.ReportClose {
		return
	}
	for i := range r.Sectors {
		if current, ok := legacyCloseSentiments[r.Sectors[i].Sentiment]; ok {
			r.Sectors[i].Sentiment = current
		}
	}
}
