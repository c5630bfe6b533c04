package cost

import "context"

type Repository interface {
	List(ctx context.Context) ([]ActionCost, error)
	GetByKey(ctx context.Context, actionKey string) (*ActionCost, error)
	Upsert(ctx context.Context, actionKey, actionName string, cost int64, description string) (*ActionCost, error)
	SetActive(ctx context.Context, actionKey string, active bool) (*ActionCost, error)
}
