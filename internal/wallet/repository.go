package wallet

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyReason         = errors.New("adjustment reason is required")
	ErrZeroDelta           = errors.New("delta must be non-zero")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w, `SELECT * FROM wallets WHERE user_id = $1`, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO wallets (user_id)
		 VALUES ($1)
		 RETURNING id, user_id, balance, created_at, updated_at`,
		userID,
	).StructScan(w)

	if err != nil {
		return nil, err
	}

	return w, nil
}

// GetBalance reads the balance without creating a wallet row. A user
// who was never provisioned reads as 0, not as an error.
func (r *repository) GetBalance(ctx context.Context, userID int) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ApplyDelta is the only balance mutation path. It locks the wallet
// row, rejects any delta that would take the balance below zero, and
// writes the updated balance together with its transaction row inside
// one database transaction. Returns the new balance.
func (r *repository) ApplyDelta(ctx context.Context, userID int, delta int64, txType, description, referenceID string) (int64, error) {
	if delta == 0 {
		return 0, ErrZeroDelta
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var w Wallet
	err = tx.QueryRowxContext(ctx,
		`SELECT id, user_id, balance, created_at, updated_at
		 FROM wallets
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowxContext(ctx,
				`INSERT INTO wallets (user_id)
				 VALUES ($1)
				 RETURNING id, user_id, balance, created_at, updated_at`,
				userID,
			).StructScan(&w)
			if err != nil {
				return 0, err
			}
		} else {
			return 0, err
		}
	}

	newBalance := w.Balance + delta
	if newBalance < 0 {
		return 0, ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets
		 SET balance = $1, updated_at = NOW()
		 WHERE id = $2`,
		newBalance, w.ID,
	)
	if err != nil {
		return 0, err
	}

	var ref sql.NullString
	if referenceID != "" {
		ref = sql.NullString{String: referenceID, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, amount, type, description, reference_id, balance_after)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, delta, txType, description, ref, newBalance,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Adjust applies a signed admin correction. The reason is mandatory
// and lands in the transaction description verbatim.
func (r *repository) Adjust(ctx context.Context, userID int, delta int64, reason string) (int64, error) {
	if strings.TrimSpace(reason) == "" {
		return 0, ErrEmptyReason
	}
	return r.ApplyDelta(ctx, userID, delta, TxTypeAdjustment, reason, "")
}

// BetaRefill grants the fixed promotional bonus. Not idempotent:
// every call grants another bonus. Production top-ups need an
// idempotency key before reusing this.
func (r *repository) BetaRefill(ctx context.Context, userID int, amount int64) (int64, error) {
	return r.ApplyDelta(ctx, userID, amount, TxTypeBonus, "beta credit refill", "")
}

func (r *repository) GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var walletID int
	err := r.db.GetContext(ctx, &walletID, `SELECT id FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var txs []Transaction
	err = r.db.SelectContext(ctx, &txs, `
		SELECT id, wallet_id, amount, type, description, reference_id, balance_after, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}
