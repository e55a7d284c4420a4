package prediction

import "context"

// Repository is the prediction sink. Insert returns the assigned id; the
// service treats any error as a swallowed best-effort failure, so
// implementations must not be relied on for request success.
type Repository interface {
	Insert(ctx context.Context, record *Record) (string, error)
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
}
