// Package keymap maps normalized key chords to document-level actions.
// The editor front-end forwards physical key-down events; the dispatcher
// decides whether a registered action fires or the event is left to the
// browser's native text-editing behavior.
package keymap

import (
	"strings"
	"sync"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
)

// Event is one normalized physical key-down event from the front-end.
// EditableFocus is true when focus is inside an input, textarea, or an
// element marked content-editable.
type Event struct {
	Key           string `json:"key"`
	Ctrl          bool   `json:"ctrl"`
	Alt           bool   `json:"alt"`
	Shift         bool   `json:"shift"`
	Meta          bool   `json:"meta"`
	EditableFocus bool   `json:"editableFocus"`
}

// Chord returns the normalized chord string for the event, modifiers in
// fixed order and the key lower-cased, e.g. "ctrl+shift+z".
func (e Event) Chord() string {
	var parts []string
	if e.Ctrl {
		parts = append(parts, "ctrl")
	}
	if e.Alt {
		parts = append(parts, "alt")
	}
	if e.Shift {
		parts = append(parts, "shift")
	}
	if e.Meta {
		parts = append(parts, "meta")
	}
	parts = append(parts, strings.ToLower(e.Key))
	return strings.Join(parts, "+")
}

// Action is a zero-argument shortcut handler.
type Action func()

// Dispatcher holds the chord registry.
type Dispatcher struct {
	mu       sync.RWMutex
	bindings map[string]Action
	logger   *common.Logger
}

// New creates an empty dispatcher.
func New(logger *common.Logger) *Dispatcher {
	return &Dispatcher{
		bindings: make(map[string]Action),
		logger:   logger,
	}
}

// Bind registers an action for a chord, replacing any previous binding.
func (d *Dispatcher) Bind(chord string, action Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings[strings.ToLower(chord)] = action
}

// Dispatch handles one key event. It returns true when a registered action
// ran, in which case the front-end suppresses the browser default.
//
// Text-editing focus always wins, for every chord including undo/redo:
// while the user is typing, nothing is intercepted, so the field's native
// undo never fights the document-level history and locale key collisions
// cannot swallow characters.
func (d *Dispatcher) Dispatch(e Event) bool {
	if e.EditableFocus {
		return false
	}

	d.mu.RLock()
	action, ok := d.bindings[e.Chord()]
	d.mu.RUnlock()
	if !ok {
		return false
	}

	if d.logger != nil {
		d.logger.Debug().Str("chord", e.Chord()).Msg("dispatching shortcut")
	}
	action()
	return true
}
