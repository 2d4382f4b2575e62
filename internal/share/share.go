// Package share publishes read-only report snapshots under opaque ids.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tlsguqwn-ship-it/rising-report/internal/cache"
	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/interfaces"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

// ErrNotFound is returned when no published snapshot exists for an id.
var ErrNotFound = errors.New("shared report not found")

const resolveCacheTTL = 5 * time.Minute

// SharedReport is one published snapshot.
type SharedReport struct {
	ID          string              `json:"id"`
	Report      models.Report       `json:"report"`
	Options     models.ShareOptions `json:"options"`
	PublishedAt string              `json:"publishedAt"`
}

// Service persists and resolves shared snapshots in the KV store.
type Service struct {
	kv     interfaces.KeyValueStorage
	cache  *cache.SnapshotCache
	logger *common.Logger
	now    func() time.Time
}

// NewService creates the share service.
func NewService(kv interfaces.KeyValueStorage, logger *common.Logger) *Service {
	return &Service{
		kv:     kv,
		cache:  cache.New(resolveCacheTTL, 256),
		logger: logger,
		now:    time.Now,
	}
}

func shareKey(id string) string {
	return "share:" + id
}

// newShareID returns the first group of a fresh uuid. Eight hex characters
// keep the share URL hand-copyable and are ample for a single-user store.
func newShareID() string {
	return uuid.NewString()[:8]
}

// Publish stores a deep copy of the document and returns the opaque id.
func (s *Service) Publish(ctx context.Context, doc models.Report, opts models.ShareOptions) (string, error) {
	id := newShareID()

	entry := SharedReport{
		ID:          id,
		Report:      doc.Clone(),
		Options:     opts,
		PublishedAt: common.FormatReportStamp(s.now()),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to serialize shared report: %w", err)
	}
	if err := s.kv.Set(ctx, shareKey(id), string(raw)); err != nil {
		return "", fmt.Errorf("failed to publish report: %w", err)
	}

	s.logger.Info().Str("share_id", id).Str("mode", string(doc.ReportType)).Msg("report published")
	return id, nil
}

// Resolve returns the published snapshot for an id, from cache when warm.
func (s *Service) Resolve(ctx context.Context, id string) (*SharedReport, error) {
	if snap, ok := s.cache.Get(id); ok {
		return &SharedReport{
			ID:          id,
			Report:      snap.Report.Clone(),
			Options:     snap.Options,
			PublishedAt: snap.PublishedAt,
		}, nil
	}

	raw, err := s.kv.Get(ctx, shareKey(id))
	if err != nil {
		return nil, ErrNotFound
	}

	var entry SharedReport
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warn().Str("share_id", id).Str("error", err.Error()).Msg("corrupt shared report")
		return nil, ErrNotFound
	}

	s.cache.Set(id, &cache.Snapshot{
		Report:      entry.Report.Clone(),
		Options:     entry.Options,
		PublishedAt: entry.PublishedAt,
	})
	return &entry, nil
}
