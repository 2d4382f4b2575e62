package models

// SharedFieldNames enumerates the fields carried over unchanged when
// switching modes without a persisted target document. The list is static:
// carryover is an explicit typed copy, never dynamic field patching.
var SharedFieldNames = []string{"usMarket", "expert", "schedule"}

// ShareOptions control how a published snapshot is presented. They travel
// with the snapshot and never alter the document itself.
type ShareOptions struct {
	HideSchedule bool   `json:"hideSchedule,omitempty"`
	HideExpert   bool   `json:"hideExpert,omitempty"`
	Watermark    string `json:"watermark,omitempty"`
}

// CopySharedFields copies the mode-independent fields from src onto dst.
// The two report types intentionally share US-market commentary, the expert
// section, and the day's schedule; everything else is mode-specific.
func CopySharedFields(dst *Report, src *Report) {
	dst.USMarket = src.USMarket
	dst.Expert = src.Expert

	dst.Schedule = make([]ScheduleItem, len(src.Schedule))
	copy(dst.Schedule, src.Schedule)
}
