package ledger

import (
	"context"
	"time"
)

type Repository interface {
	FindUnexpired(ctx context.Context, userID int, parameterTypes []string) ([]Entry, error)
	InsertBatch(ctx context.Context, userID int, tuples []Tuple, expiresAt time.Time) error
}
