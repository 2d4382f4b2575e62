package keymap

import (
	"testing"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
)

func TestChordNormalization(t *testing.T) {
	cases := []struct {
		event Event
		want  string
	}{
		{Event{Key: "z", Ctrl: true}, "ctrl+z"},
		{Event{Key: "Z", Ctrl: true, Shift: true}, "ctrl+shift+z"},
		{Event{Key: "s", Ctrl: true}, "ctrl+s"},
		{Event{Key: "P", Ctrl: true, Alt: true, Meta: true}, "ctrl+alt+meta+p"},
		{Event{Key: "Escape"}, "escape"},
	}
	for _, c := range cases {
		if got := c.event.Chord(); got != c.want {
			t.Errorf("chord for %+v: expected %q, got %q", c.event, c.want, got)
		}
	}
}

func TestDispatch_InvokesOnce(t *testing.T) {
	d := New(common.NewSilentLogger())

	calls := 0
	d.Bind("ctrl+z", func() { calls++ })

	handled := d.Dispatch(Event{Key: "z", Ctrl: true})
	if !handled {
		t.Fatal("expected chord to be handled")
	}
	if calls != 1 {
		t.Errorf("expected exactly one invocation, got %d", calls)
	}
}

func TestDispatch_EditableFocusSuppressesUndo(t *testing.T) {
	d := New(common.NewSilentLogger())

	calls := 0
	d.Bind("ctrl+z", func() { calls++ })

	handled := d.Dispatch(Event{Key: "z", Ctrl: true, EditableFocus: true})
	if handled {
		t.Error("chord in editable focus must not be handled")
	}
	if calls != 0 {
		t.Errorf("action must not fire while typing, fired %d times", calls)
	}

	// away from the text field the same chord fires
	if !d.Dispatch(Event{Key: "z", Ctrl: true}) {
		t.Error("chord outside editable focus should fire")
	}
	if calls != 1 {
		t.Errorf("expected one invocation, got %d", calls)
	}
}

func TestDispatch_EditableFocusSuppressesEveryChord(t *testing.T) {
	d := New(common.NewSilentLogger())

	saved := false
	d.Bind("ctrl+s", func() { saved = true })

	if d.Dispatch(Event{Key: "s", Ctrl: true, EditableFocus: true}) {
		t.Error("save chord must also defer to editable focus")
	}
	if saved {
		t.Error("save must not fire while typing")
	}
}

func TestDispatch_UnboundChord(t *testing.T) {
	d := New(common.NewSilentLogger())

	if d.Dispatch(Event{Key: "k", Ctrl: true}) {
		t.Error("unbound chord must not be handled")
	}
}

func TestBind_Replaces(t *testing.T) {
	d := New(common.NewSilentLogger())

	first, second := 0, 0
	d.Bind("ctrl+y", func() { first++ })
	d.Bind("ctrl+y", func() { second++ })

	d.Dispatch(Event{Key: "y", Ctrl: true})
	if first != 0 || second != 1 {
		t.Errorf("rebinding must replace: first=%d second=%d", first, second)
	}
}
