// Package store persists report documents in the key-value storage layer.
// Slots are namespaced by report mode; storage failures degrade to absent
// reads and surfaced-but-non-fatal write errors.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/interfaces"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

// MaxRecentSaves bounds the per-mode recent-saves list.
const MaxRecentSaves = 5

const keyLastMode = "report:last_mode"

func currentKey(rt models.ReportType) string {
	return fmt.Sprintf("report:%s:current", rt)
}

func recentKey(rt models.ReportType) string {
	return fmt.Sprintf("report:%s:recent", rt)
}

// RecentSave is one timestamped snapshot in the recent-saves list.
// The list survives restarts; the in-memory undo history does not.
type RecentSave struct {
	Report  models.Report `json:"report"`
	SavedAt string        `json:"savedAt"`
}

// ReportStore is the persistence adapter for report documents.
type ReportStore struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
	now    func() time.Time
}

// NewReportStore creates a report store over the given key-value storage.
func NewReportStore(kv interfaces.KeyValueStorage, logger *common.Logger) *ReportStore {
	return &ReportStore{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the persisted current document for a mode. The second result
// is false when no document was ever saved or the slot cannot be read or
// parsed; callers fall back to the compiled-in template.
func (s *ReportStore) Load(ctx context.Context, rt models.ReportType) (models.Report, bool) {
	raw, err := s.kv.Get(ctx, currentKey(rt))
	if err != nil {
		return models.Report{}, false
	}

	var r models.Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		s.logger.Warn().Str("mode", string(rt)).Str("error", err.Error()).Msg("corrupt persisted report, falling back to template")
		return models.Report{}, false
	}

	Migrate(&r)
	models.BackfillDefaults(&r)
	return r, true
}

// Save overwrites the mode's current-document slot and prepends a
// timestamped snapshot to its recent-saves list.
func (s *ReportStore) Save(ctx context.Context, rt models.ReportType, doc models.Report) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := s.kv.Set(ctx, currentKey(rt), string(raw)); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	if err := s.RecordSnapshot(ctx, rt, doc); err != nil {
		// The current slot was written; a failed history entry is demoted
		// to a warning rather than failing the save.
		s.logger.Warn().Str("mode", string(rt)).Str("error", err.Error()).Msg("failed to record save snapshot")
	}
	return nil
}

// RecordSnapshot prepends a timestamped deep copy to the mode's
// recent-saves list, truncating to MaxRecentSaves. Export and share
// actions call this directly without touching the current slot.
func (s *ReportStore) RecordSnapshot(ctx context.Context, rt models.ReportType, doc models.Report) error {
	entries := s.LoadRecent(ctx, rt)

	entry := RecentSave{
		Report:  doc.Clone(),
		SavedAt: common.FormatReportStamp(s.now()),
	}
	entries = append([]RecentSave{entry}, entries...)
	if len(entries) > MaxRecentSaves {
		entries = entries[:MaxRecentSaves]
	}

	return s.writeRecent(ctx, rt, entries)
}

// LoadRecent returns the mode's recent-saves list, newest first.
// Missing or unreadable lists degrade to empty.
func (s *ReportStore) LoadRecent(ctx context.Context, rt models.ReportType) []RecentSave {
	raw, err := s.kv.Get(ctx, recentKey(rt))
	if err != nil {
		return nil
	}
	var entries []RecentSave
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn().Str("mode", string(rt)).Str("error", err.Error()).Msg("corrupt recent-saves list, treating as empty")
		return nil
	}
	return entries
}

// DeleteRecent removes one entry from the recent-saves list by position and
// persists the shortened list. An out-of-range index is a no-op.
func (s *ReportStore) DeleteRecent(ctx context.Context, rt models.ReportType, index int) error {
	entries := s.LoadRecent(ctx, rt)
	if index < 0 || index >= len(entries) {
		return nil
	}
	entries = append(entries[:index], entries[index+1:]...)
	return s.writeRecent(ctx, rt, entries)
}

func (s *ReportStore) writeRecent(ctx context.Context, rt models.ReportType, entries []RecentSave) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize recent saves: %w", err)
	}
	if err := s.kv.Set(ctx, recentKey(rt), string(raw)); err != nil {
		return fmt.Errorf("failed to persist recent saves: %w", err)
	}
	return nil
}

// EraseCurrent deletes the mode's current-document slot. The recent-saves
// list is left untouched.
func (s *ReportStore) EraseCurrent(ctx context.Context, rt models.ReportType) error {
	if err := s.kv.Delete(ctx, currentKey(rt)); err != nil {
		return fmt.Errorf("failed to erase report slot: %w", err)
	}
	return nil
}

// RememberLastMode records the mode to reopen at next cold start.
func (s *ReportStore) RememberLastMode(ctx context.Context, rt models.ReportType) {
	if err := s.kv.Set(ctx, keyLastMode, string(rt)); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to remember last mode")
	}
}

// LoadLastMode returns the mode the user last had open, defaulting to
// pre-market when unset or unreadable.
func (s *ReportStore) LoadLastMode(ctx context.Context) models.ReportType {
	raw, err := s.kv.Get(ctx, keyLastMode)
	if err != nil {
		return models.ReportPreMarket
	}
	rt := models.ReportType(raw)
	if !rt.Valid() {
		return models.ReportPreMarket
	}
	return rt
}
