package report

import "github.com/tlsguqwn-ship-it/rising-report/internal/models"

// Notice levels for transient user-facing notifications.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notifier receives transient, dismissable notices. Failures in the
// controller surface here instead of crashing.
type Notifier interface {
	Notify(level, message string)
}

// Renderer is the controller's view of the preview/editor surface.
// DocumentChanged pushes the new live document; CleanupFormatting tells the
// renderer to strip ad hoc inline formatting from its editable regions —
// a view concern the controller requests but never performs itself.
type Renderer interface {
	DocumentChanged(doc models.Report)
	CleanupFormatting()
}

// NopSurface is a Notifier/Renderer that does nothing. Used in tests and
// before the live channel is attached.
type NopSurface struct{}

func (NopSurface) Notify(level, message string)       {}
func (NopSurface) DocumentChanged(doc models.Report)  {}
func (NopSurface) CleanupFormatting()                 {}
