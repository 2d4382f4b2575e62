package share

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

type memoryKV struct {
	data map[string]string
	gets int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.gets++
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
	return m.data, nil
}

func TestPublishResolve(t *testing.T) {
	kv := newMemoryKV()
	svc := NewService(kv, common.NewSilentLogger())
	ctx := context.Background()

	doc := models.NewTemplate(models.ReportClose)
	doc.MarketView.Body = "마감 총평"

	id, err := svc.Publish(ctx, doc, models.ShareOptions{HideExpert: true})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id == "" {
		t.Fatal("expected opaque id")
	}
	if len(id) != 8 || strings.Contains(id, "-") {
		t.Errorf("share id should be one short uuid group, got %q", id)
	}

	got, err := svc.Resolve(ctx, id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Report.MarketView.Body != "마감 총평" {
		t.Errorf("unexpected body: %q", got.Report.MarketView.Body)
	}
	if !got.Options.HideExpert {
		t.Error("display options should round-trip")
	}
	if got.PublishedAt == "" {
		t.Error("expected publish timestamp")
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewService(newMemoryKV(), common.NewSilentLogger())

	if _, err := svc.Resolve(context.Background(), "missing-id"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_CachesSnapshot(t *testing.T) {
	kv := newMemoryKV()
	svc := NewService(kv, common.NewSilentLogger())
	ctx := context.Background()

	id, err := svc.Publish(ctx, models.NewTemplate(models.ReportPreMarket), models.ShareOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Resolve(ctx, id); err != nil {
		t.Fatal(err)
	}
	gets := kv.gets
	if _, err := svc.Resolve(ctx, id); err != nil {
		t.Fatal(err)
	}
	if kv.gets != gets {
		t.Error("second resolve should be served from cache")
	}
}

func TestPublish_SnapshotIsIndependent(t *testing.T) {
	kv := newMemoryKV()
	svc := NewService(kv, common.NewSilentLogger())
	ctx := context.Background()

	doc := models.NewTemplate(models.ReportPreMarket)
	id, err := svc.Publish(ctx, doc, models.ShareOptions{})
	if err != nil {
		t.Fatal(err)
	}

	doc.Sectors[0].Name = "편집 후 변경"

	got, err := svc.Resolve(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Report.Sectors[0].Name == "편집 후 변경" {
		t.Error("published snapshot must not track later edits")
	}
}
