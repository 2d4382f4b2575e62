// Package report orchestrates the live document: it composes the history
// stack, the persistence adapter, and the renderer surface behind a single
// mutation path.
package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/history"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/store"
)

// ErrNotConfirmed is returned when a destructive operation arrives without
// the user's explicit confirmation.
var ErrNotConfirmed = errors.New("operation requires confirmation")

// Controller owns the live document. All mutations funnel through it; the
// mutex serializes callers (HTTP handlers, websocket events, fetch
// completions) so the history stays linear.
type Controller struct {
	mu sync.Mutex

	mode     models.ReportType
	hist     *history.Stack[models.Report]
	store    *store.ReportStore
	recent   []store.RecentSave
	logger   *common.Logger
	notifier Notifier
	renderer Renderer
	now      func() time.Time
}

// NewController performs startup: it reopens the last-used mode, loads that
// mode's persisted document (migrated) or falls back to the compiled-in
// template, then re-stamps the date through the ordinary mutation path.
func NewController(ctx context.Context, st *store.ReportStore, logger *common.Logger) *Controller {
	c := &Controller{
		store:    st,
		logger:   logger,
		notifier: NopSurface{},
		renderer: NopSurface{},
		now:      time.Now,
	}

	c.mode = st.LoadLastMode(ctx)
	doc, ok := st.Load(ctx, c.mode)
	if !ok {
		doc = models.NewTemplate(c.mode)
	}
	c.hist = history.New(doc, history.DefaultLimit)
	c.recent = st.LoadRecent(ctx, c.mode)

	// The date stamp goes through Set like any edit, so it lands as one
	// history entry rather than a hidden mutation of the initial value.
	stamped := doc.Clone()
	stamped.Date = common.FormatReportDate(c.now())
	c.hist.Set(stamped)

	logger.Info().Str("mode", string(c.mode)).Msg("document controller ready")
	return c
}

// AttachSurface wires the notifier and renderer (typically the live
// websocket hub). Pass nil to keep the current value.
func (c *Controller) AttachSurface(n Notifier, r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n != nil {
		c.notifier = n
	}
	if r != nil {
		c.renderer = r
	}
}

// Document returns a copy of the live document.
func (c *Controller) Document() models.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Current().Clone()
}

// Mode returns the active report mode.
func (c *Controller) Mode() models.ReportType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// CanUndo reports whether an undo step exists.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (c *Controller) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanRedo()
}

// OnChange adopts an edited document from a renderer or an async producer.
// The mode is pinned to the controller's; a document whose bounded lists
// violate their limits is refused as a no-op.
func (c *Controller) OnChange(doc models.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc.ReportType = c.mode
	if err := checkBounds(&doc); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("rejected out-of-bounds document edit")
		return
	}

	c.hist.Set(doc.Clone())
	c.renderer.DocumentChanged(c.hist.Current().Clone())
}

// Undo steps the document back. Unavailable undo is a safe no-op.
func (c *Controller) Undo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if doc, ok := c.hist.Undo(); ok {
		c.renderer.DocumentChanged(doc.Clone())
	}
}

// Redo steps the document forward. Unavailable redo is a safe no-op.
func (c *Controller) Redo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if doc, ok := c.hist.Redo(); ok {
		c.renderer.DocumentChanged(doc.Clone())
	}
}

// Save writes the document to its mode's slot and records a recent-saves
// snapshot. Storage failure surfaces as a notice, never a crash.
func (c *Controller) Save(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, c.mode, c.hist.Current()); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("save failed")
		c.notifier.Notify(NoticeError, "저장에 실패했습니다. 저장 공간을 확인해 주세요.")
		return
	}
	c.recent = c.store.LoadRecent(ctx, c.mode)
	c.notifier.Notify(NoticeSuccess, "저장되었습니다.")
}

// ResetToTemplate returns to the mode's persisted document, or to the
// compiled-in template when none exists. Starts a fresh undo lineage.
func (c *Controller) ResetToTemplate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderer.CleanupFormatting()

	doc, ok := c.store.Load(ctx, c.mode)
	if !ok {
		doc = models.NewTemplate(c.mode)
	}
	doc.Date = common.FormatReportDate(c.now())
	c.hist.Reset(doc)
	c.renderer.DocumentChanged(doc.Clone())
}

// FullReset erases the mode's persisted slot (recent saves untouched) and
// adopts the compiled-in template. Refused without explicit confirmation.
func (c *Controller) FullReset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.EraseCurrent(ctx, c.mode); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("full reset failed to erase slot")
		c.notifier.Notify(NoticeError, "초기화에 실패했습니다.")
		return err
	}

	c.renderer.CleanupFormatting()

	doc := models.NewTemplate(c.mode)
	doc.Date = common.FormatReportDate(c.now())
	c.hist.Reset(doc)
	c.renderer.DocumentChanged(doc.Clone())
	c.notifier.Notify(NoticeSuccess, "문서가 초기화되었습니다.")
	return nil
}

// SwitchMode saves the outgoing document into its own slot, flips the
// sticky last-mode record, reloads the target mode's recent-saves list,
// and adopts the target document on a fresh undo lineage. When no persisted
// target exists, the template is used with the shared fields carried over.
func (c *Controller) SwitchMode(ctx context.Context, target models.ReportType) error {
	if !target.Valid() {
		return fmt.Errorf("unknown report mode: %s", target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if target == c.mode {
		return nil
	}

	outgoing := c.hist.Current()
	if err := c.store.Save(ctx, c.mode, outgoing); err != nil {
		// The in-memory switch still proceeds; only durability suffered.
		c.logger.Warn().Str("error", err.Error()).Msg("failed to persist outgoing mode document")
		c.notifier.Notify(NoticeError, "이전 모드 문서 저장에 실패했습니다.")
	}

	c.store.RememberLastMode(ctx, target)
	c.recent = c.store.LoadRecent(ctx, target)

	doc, ok := c.store.Load(ctx, target)
	if !ok {
		doc = models.NewTemplate(target)
		models.CopySharedFields(&doc, &outgoing)
	}
	doc.Date = common.FormatReportDate(c.now())

	c.mode = target
	c.hist.Reset(doc)
	c.renderer.DocumentChanged(doc.Clone())
	return nil
}

// Recent returns the current mode's recent-saves list, newest first.
func (c *Controller) Recent() []store.RecentSave {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]store.RecentSave, len(c.recent))
	for i, e := range c.recent {
		out[i] = store.RecentSave{Report: e.Report.Clone(), SavedAt: e.SavedAt}
	}
	return out
}

// RestoreFromHistory adopts a recent-saves snapshot by position, on a fresh
// undo lineage: a restored save must not be undoable back into whatever was
// live before.
func (c *Controller) RestoreFromHistory(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.recent) {
		return fmt.Errorf("no saved snapshot at position %d", index)
	}

	doc := c.recent[index].Report.Clone()
	doc.ReportType = c.mode
	models.BackfillDefaults(&doc)
	c.hist.Reset(doc)
	c.renderer.DocumentChanged(doc.Clone())
	return nil
}

// DeleteHistoryEntry removes one recent-saves entry and persists the
// shortened list. The live document is untouched.
func (c *Controller) DeleteHistoryEntry(ctx context.Context, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteRecent(ctx, c.mode, index); err != nil {
		c.notifier.Notify(NoticeError, "저장 이력 삭제에 실패했습니다.")
		return err
	}
	c.recent = c.store.LoadRecent(ctx, c.mode)
	return nil
}

// StampForExport re-stamps the document date with the current timestamp
// through the ordinary mutation path, records a recent-saves snapshot, and
// returns the document the export pipeline should render.
func (c *Controller) StampForExport(ctx context.Context) models.Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.hist.Current().Clone()
	doc.Date = common.FormatReportDate(c.now())
	c.hist.Set(doc)
	c.renderer.DocumentChanged(doc.Clone())

	if err := c.store.RecordSnapshot(ctx, c.mode, doc); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("failed to record export snapshot")
	} else {
		c.recent = c.store.LoadRecent(ctx, c.mode)
	}
	return doc.Clone()
}

// RecordShareSnapshot records the history side effect of a successful
// publish, mirroring an explicit save.
func (c *Controller) RecordShareSnapshot(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.RecordSnapshot(ctx, c.mode, c.hist.Current()); err != nil {
		c.logger.Warn().Str("error", err.Error()).Msg("failed to record share snapshot")
		return
	}
	c.recent = c.store.LoadRecent(ctx, c.mode)
}

// Notify forwards a transient notice to the attached surface. Async glue
// (market-data fetch, AI generation) reports its failures here.
func (c *Controller) Notify(level, message string) {
	c.mu.Lock()
	n := c.notifier
	c.mu.Unlock()
	n.Notify(level, message)
}

// checkBounds verifies every bounded list on an incoming document.
func checkBounds(r *models.Report) error {
	if len(r.Indicators) > models.MaxIndicators {
		return fmt.Errorf("indicator count %d above maximum %d", len(r.Indicators), models.MaxIndicators)
	}
	if len(r.SubIndicators) > models.MaxIndicators {
		return fmt.Errorf("sub-indicator count %d above maximum %d", len(r.SubIndicators), models.MaxIndicators)
	}
	if len(r.Sectors) < models.MinSectors || len(r.Sectors) > models.MaxSectors {
		return fmt.Errorf("sector count %d out of bounds", len(r.Sectors))
	}
	if len(r.Themes) < models.MinThemes || len(r.Themes) > models.MaxThemes {
		return fmt.Errorf("theme count %d out of bounds", len(r.Themes))
	}
	for _, tg := range r.Themes {
		if len(tg.Stocks) < models.MinThemeStocks || len(tg.Stocks) > models.MaxThemeStocks {
			return fmt.Errorf("theme %q stock count %d out of bounds", tg.Keyword, len(tg.Stocks))
		}
	}
	if len(r.Schedule) < models.MinSchedule || len(r.Schedule) > models.MaxSchedule {
		return fmt.Errorf("schedule count %d out of bounds", len(r.Schedule))
	}
	return nil
}
