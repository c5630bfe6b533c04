package wallet

import "context"

type Repository interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error)
	GetBalance(ctx context.Context, userID int) (int64, error)
	ApplyDelta(ctx context.Context, userID int, delta int64, txType, description, referenceID string) (int64, error)
	Adjust(ctx context.Context, userID int, delta int64, reason string) (int64, error)
	BetaRefill(ctx context.Context, userID int, amount int64) (int64, error)
	GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error)
}
