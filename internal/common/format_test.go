package common

import (
	"testing"
	"time"
)

func TestKoreanWeekday(t *testing.T) {
	// 2026-08-31 is a Monday
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	if got := KoreanWeekday(monday); got != "월" {
		t.Errorf("expected 월, got %s", got)
	}
	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	if got := KoreanWeekday(sunday); got != "일" {
		t.Errorf("expected 일, got %s", got)
	}
}

func TestFormatReportDate(t *testing.T) {
	ts := time.Date(2026, 3, 5, 8, 30, 0, 0, time.Local) // Thursday
	got := FormatReportDate(ts)
	want := "2026년 3월 5일 목요일"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatReportStamp(t *testing.T) {
	ts := time.Date(2026, 12, 1, 7, 5, 0, 0, time.Local) // Tuesday
	got := FormatReportStamp(ts)
	want := "26년12월1일(화) 07:05"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2026, 8, 30, 14, 5, 0, 0, time.Local) // Sunday
	got := ExportFileName(ts, "장전 브리핑", 2)
	want := "26년8월30일(일) 14:05 장전 브리핑 2P"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
