package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/keymap"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
	"github.com/tlsguqwn-ship-it/rising-report/internal/share"
	"github.com/tlsguqwn-ship-it/rising-report/internal/store"
)

type memoryKV struct {
	data map[string]string
}

func newMemoryKV() *memoryKV { return &memoryKV{data: make(map[string]string)} }

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("key not found: " + key)
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryKV) GetAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

type testEnv struct {
	ctrl *report.Controller
	mux  *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := common.NewSilentLogger()
	kv := newMemoryKV()
	st := store.NewReportStore(kv, logger)
	ctrl := report.NewController(context.Background(), st, logger)

	docs := NewDocumentHandler(ctrl, logger)
	keys := keymap.New(logger)
	keys.Bind("ctrl+z", ctrl.Undo)

	shareSvc := share.NewService(kv, logger)
	pages := NewPageHandler(logger, false)
	shares := NewShareHandler(shareSvc, ctrl, pages, "http://localhost:4311", logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/document", docs.State)
	mux.HandleFunc("PUT /api/document", docs.Update)
	mux.HandleFunc("POST /api/document/undo", docs.Undo)
	mux.HandleFunc("POST /api/document/redo", docs.Redo)
	mux.HandleFunc("POST /api/document/save", docs.Save)
	mux.HandleFunc("POST /api/document/reset", docs.Reset)
	mux.HandleFunc("POST /api/document/full-reset", docs.FullReset)
	mux.HandleFunc("POST /api/document/mode", docs.SwitchMode)
	mux.HandleFunc("POST /api/document/entries", docs.Entries)
	mux.HandleFunc("GET /api/recent", docs.Recent)
	mux.HandleFunc("POST /api/recent/restore", docs.RestoreRecent)
	mux.Handle("/api/keys", NewKeyHandler(keys, logger))
	mux.HandleFunc("POST /api/share", shares.Publish)
	mux.HandleFunc("GET /api/share/{id}", shares.Resolve)
	mux.HandleFunc("GET /s/{id}", shares.Page)

	return &testEnv{ctrl: ctrl, mux: mux}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, editorState) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	var state editorState
	json.Unmarshal(rec.Body.Bytes(), &state)
	return rec, state
}

func TestDocumentState(t *testing.T) {
	env := newTestEnv(t)

	rec, state := env.do(t, "GET", "/api/document", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if state.Mode != models.ReportPreMarket {
		t.Fatalf("expected premarket mode, got %q", state.Mode)
	}
	if state.Document.Title != models.TitlePreMarket {
		t.Fatalf("unexpected title %q", state.Document.Title)
	}
}

func TestDocumentUpdateAndUndo(t *testing.T) {
	env := newTestEnv(t)

	doc := env.ctrl.Document()
	doc.MarketView.Body = "코스피 강세 전망"
	raw, _ := json.Marshal(doc)

	rec, state := env.do(t, "PUT", "/api/document", string(raw))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if state.Document.MarketView.Body != "코스피 강세 전망" {
		t.Fatal("edit not applied")
	}
	if !state.CanUndo {
		t.Fatal("expected canUndo after edit")
	}

	_, state = env.do(t, "POST", "/api/document/undo", "")
	if state.Document.MarketView.Body == "코스피 강세 전망" {
		t.Fatal("undo did not revert the edit")
	}
	if !state.CanRedo {
		t.Fatal("expected canRedo after undo")
	}
}

func TestDocumentUpdateRefusesOversizedLists(t *testing.T) {
	env := newTestEnv(t)

	doc := env.ctrl.Document()
	for len(doc.Sectors) <= models.MaxSectors {
		doc.Sectors = append(doc.Sectors, models.Sector{ID: models.NewEntryID()})
	}
	raw, _ := json.Marshal(doc)

	_, state := env.do(t, "PUT", "/api/document", string(raw))
	if len(state.Document.Sectors) > models.MaxSectors {
		t.Fatalf("oversized sector list accepted: %d", len(state.Document.Sectors))
	}
}

func TestFullResetRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, "POST", "/api/document/full-reset", `{"confirmed":false}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed full reset: status %d, want 400", rec.Code)
	}

	rec, state := env.do(t, "POST", "/api/document/full-reset", `{"confirmed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmed full reset: status %d", rec.Code)
	}
	if state.CanUndo {
		t.Fatal("full reset should start a fresh history")
	}
}

func TestSwitchModeRejectsUnknown(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, "POST", "/api/document/mode", `{"mode":"weekly"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}

	rec, state := env.do(t, "POST", "/api/document/mode", `{"mode":"close"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if state.Mode != models.ReportClose {
		t.Fatalf("mode %q, want close", state.Mode)
	}
}

func TestEntriesOps(t *testing.T) {
	env := newTestEnv(t)

	before := len(env.ctrl.Document().Sectors)
	_, state := env.do(t, "POST", "/api/document/entries", `{"op":"add_sector"}`)
	if len(state.Document.Sectors) != before+1 {
		t.Fatalf("sector not added: %d -> %d", before, len(state.Document.Sectors))
	}

	rec, _ := env.do(t, "POST", "/api/document/entries", `{"op":"rotate_sectors"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown op: status %d, want 400", rec.Code)
	}
}

func TestKeysEndpoint(t *testing.T) {
	env := newTestEnv(t)

	doc := env.ctrl.Document()
	doc.MarketView.Body = "수정"
	raw, _ := json.Marshal(doc)
	env.do(t, "PUT", "/api/document", string(raw))

	rec, _ := env.do(t, "POST", "/api/keys", `{"key":"z","ctrl":true}`)
	var resp map[string]bool
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp["handled"] {
		t.Fatal("ctrl+z should dispatch the undo binding")
	}
	if env.ctrl.CanUndo() {
		t.Fatal("undo binding did not run")
	}

	rec, _ = env.do(t, "POST", "/api/keys", `{"key":"z","ctrl":true,"editableFocus":true}`)
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["handled"] {
		t.Fatal("editable focus must suppress shortcuts")
	}
}

func TestRecentListing(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/api/document/save", "")
	env.do(t, "POST", "/api/document/save", "")

	rec, _ := env.do(t, "GET", "/api/recent", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var body struct {
		Entries []struct {
			Index int    `json:"index"`
			Stamp string `json:"stamp"`
			Title string `json:"title"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(body.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(body.Entries))
	}

	want := env.ctrl.Recent()
	for i, e := range body.Entries {
		if e.Stamp != want[i].SavedAt {
			t.Errorf("entry %d stamp %q, want the recorded %q", i, e.Stamp, want[i].SavedAt)
		}
	}
	if body.Entries[0].Title != models.TitlePreMarket {
		t.Errorf("unexpected title %q", body.Entries[0].Title)
	}
}

func TestSharePageRenders(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, "POST", "/api/share", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status %d: %s", rec.Code, rec.Body.String())
	}
	var pub map[string]string
	json.Unmarshal(rec.Body.Bytes(), &pub)

	rec, _ = env.do(t, "GET", "/api/share/"+pub["id"], "")
	var snap share.SharedReport
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	rec, _ = env.do(t, "GET", "/s/"+pub["id"], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("share page status %d: %s", rec.Code, rec.Body.String())
	}
	page := rec.Body.String()
	if !strings.Contains(page, "report-page") {
		t.Fatal("share page missing report markup")
	}
	if !strings.Contains(page, snap.Report.Title) {
		t.Errorf("share page missing report title %q", snap.Report.Title)
	}
	if !strings.Contains(page, snap.PublishedAt) {
		t.Errorf("share page missing publish stamp %q", snap.PublishedAt)
	}

	rec, _ = env.do(t, "GET", "/s/missing-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing snapshot page: status %d, want 404", rec.Code)
	}
}

func TestSharePublishAndResolve(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, "POST", "/api/share", `{"hideSchedule":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status %d: %s", rec.Code, rec.Body.String())
	}
	var pub map[string]string
	json.Unmarshal(rec.Body.Bytes(), &pub)
	if pub["id"] == "" || !strings.Contains(pub["url"], "/s/"+pub["id"]) {
		t.Fatalf("unexpected publish response: %v", pub)
	}

	rec, _ = env.do(t, "GET", "/api/share/"+pub["id"], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve status %d", rec.Code)
	}
	var snap share.SharedReport
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !snap.Options.HideSchedule {
		t.Fatal("display options not round-tripped")
	}

	rec, _ = env.do(t, "GET", "/api/share/missing-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing snapshot: status %d, want 404", rec.Code)
	}
}
