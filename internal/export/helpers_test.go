package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
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

// previewServer serves a minimal two-page preview so the capture pipeline
// can run without the full server.
func previewServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html><html><body>
			<div class="report-page" style="width:860px;height:1216px;background:#fff">1</div>
			<div class="report-page" style="width:860px;height:1216px;background:#fff">2</div>
		</body></html>`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
