package wallet

import (
	"database/sql"
	"time"
)

// Wallet is the per-user credit balance of record. One row per user,
// created lazily on first touch, mutated only inside ApplyDelta.
type Wallet struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only audit row. Amount is signed: positive
// credits, negative debits. balance == Σ amount must hold per wallet.
type Transaction struct {
	ID           int            `db:"id" json:"id"`
	WalletID     int            `db:"wallet_id" json:"wallet_id"`
	Amount       int64          `db:"amount" json:"amount"`
	Type         string         `db:"type" json:"type"`
	Description  string         `db:"description" json:"description"`
	ReferenceID  sql.NullString `db:"reference_id" json:"reference_id,omitempty"`
	BalanceAfter int64          `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

const (
	TxTypeBonus      = "bonus"
	TxTypeUsage      = "usage"
	TxTypePurchase   = "purchase"
	TxTypeRefund     = "refund"
	TxTypeAdjustment = "adjustment"
)
