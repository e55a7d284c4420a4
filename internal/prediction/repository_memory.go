package prediction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository keeps predictions in process memory. Used in tests and
// as the sink when no DATABASE_URL is configured.
type InMemoryRepository struct {
	mu      sync.Mutex
	records []*Record
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Insert(ctx context.Context, record *Record) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, record)

	return record.ID, nil
}

func (r *InMemoryRepository) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Record
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}

	return out, nil
}
