package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// MemoryWeldRepository keeps welds in process memory. Used for demos and tests.
type MemoryWeldRepository struct {
	mu    sync.RWMutex
	welds map[string]memoryEntry
	seq   int64
	now   func() time.Time
}

type memoryEntry struct {
	weld models.Weld
	seq  int64
}

func NewMemoryWeldRepository() *MemoryWeldRepository {
	return &MemoryWeldRepository{
		welds: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// WithClock replaces the timestamp source.
func (r *MemoryWeldRepository) WithClock(now func() time.Time) *MemoryWeldRepository {
	r.now = now
	return r
}

func (r *MemoryWeldRepository) CreateWeld(_ context.Context, w *models.Weld) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := r.now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}
	r.seq++
	r.welds[w.ID] = memoryEntry{weld: w.Clone(), seq: r.seq}
	return nil
}

func (r *MemoryWeldRepository) ListWelds(_ context.Context, f WeldFilter) ([]models.Weld, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	objectName := strings.TrimSpace(f.ObjectName)

	matches := make([]memoryEntry, 0, len(r.welds))
	for _, e := range r.welds {
		if search != "" && !strings.Contains(strings.ToLower(e.weld.WeldNumber), search) {
			continue
		}
		if objectName != "" && models.StringOrEmpty(e.weld.ObjectName) != objectName {
			continue
		}
		matches = append(matches, e)
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.weld.CreatedAt.Equal(b.weld.CreatedAt) {
			return a.weld.CreatedAt.After(b.weld.CreatedAt)
		}
		return a.seq > b.seq
	})

	total := int64(len(matches))
	if f.Limit > 0 {
		start := f.Offset()
		if start > len(matches) {
			start = len(matches)
		}
		end := start + f.Limit
		if end > len(matches) {
			end = len(matches)
		}
		matches = matches[start:end]
	}

	out := make([]models.Weld, 0, len(matches))
	for _, e := range matches {
		out = append(out, e.weld.Clone())
	}
	return out, total, nil
}

func (r *MemoryWeldRepository) GetWeld(_ context.Context, id string) (*models.Weld, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.welds[id]
	if !ok {
		return nil, ErrNotFound
	}
	w := e.weld.Clone()
	return &w, nil
}

func (r *MemoryWeldRepository) SaveWeld(_ context.Context, w *models.Weld) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.welds[w.ID]
	if !ok {
		return ErrNotFound
	}
	w.CreatedAt = e.weld.CreatedAt
	w.UpdatedAt = r.now()
	e.weld = w.Clone()
	r.welds[w.ID] = e
	return nil
}

func (r *MemoryWeldRepository) DeleteWeld(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.welds[id]; !ok {
		return ErrNotFound
	}
	delete(r.welds, id)
	return nil
}
