// Package common provides shared utilities for rising-report
package common

import (
	"fmt"
	"time"
)

// koreanWeekdays maps time.Weekday to the single-character Korean weekday.
var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// KoreanWeekday returns the single-character Korean weekday for t ("월" for Monday).
func KoreanWeekday(t time.Time) string {
	return koreanWeekdays[int(t.Weekday())]
}

// FormatReportDate formats a timestamp as the document date line,
// e.g. "2026년 8월 30일 일요일".
func FormatReportDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 %s요일", t.Year(), int(t.Month()), t.Day(), KoreanWeekday(t))
}

// FormatReportStamp formats a timestamp in the short form used for export
// filenames and recent-save entries, e.g. "26년8월30일(일) 14:05".
func FormatReportStamp(t time.Time) string {
	return fmt.Sprintf("%02d년%d월%d일(%s) %02d:%02d",
		t.Year()%100, int(t.Month()), t.Day(), KoreanWeekday(t), t.Hour(), t.Minute())
}

// ExportFileName builds the deterministic export filename for one page:
// "<stamp> <mode-label> <n>P", e.g. "26년8월30일(일) 14:05 장전 브리핑 1P".
func ExportFileName(t time.Time, modeLabel string, page int) string {
	return fmt.Sprintf("%s %s %dP", FormatReportStamp(t), modeLabel, page)
}
