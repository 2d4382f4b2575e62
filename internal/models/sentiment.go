package models

// Sentiment labels valid for pre-market sectors and themes.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Sentiment labels valid for close-market sectors and themes. The close
// variant moved off the pre-market vocabulary in an earlier version; old
// persisted documents are remapped at load time.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentFlat    = "flat"
)

// SentimentVocabulary returns the valid sentiment labels for a report type.
func SentimentVocabulary(rt ReportType) []string {
	if rt == ReportClose {
		return []string{SentimentBullish, SentimentBearish, SentimentFlat}
	}
	return []string{SentimentPositive, SentimentNeutral, SentimentNegative}
}

// ValidSentiment reports whether s belongs to rt's vocabulary.
func ValidSentiment(rt ReportType, s string) bool {
	for _, v := range SentimentVocabulary(rt) {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultSentiment returns the neutral label for a report type.
func DefaultSentiment(rt ReportType) string {
	if rt == ReportClose {
		return SentimentFlat
	}
	return SentimentNeutral
}
