package cost

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("action cost not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]ActionCost, error) {
	var costs []ActionCost
	err := r.db.SelectContext(ctx, &costs, `
		SELECT action_key, action_name, cost, is_active, description, updated_at
		FROM action_costs
		ORDER BY action_key
	`)
	if err != nil {
		return nil, err
	}
	if costs == nil {
		costs = []ActionCost{}
	}
	return costs, nil
}

func (r *repository) GetByKey(ctx context.Context, actionKey string) (*ActionCost, error) {
	ac := &ActionCost{}
	err := r.db.GetContext(ctx, ac, `
		SELECT action_key, action_name, cost, is_active, description, updated_at
		FROM action_costs
		WHERE action_key = $1
	`, actionKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ac, nil
}

// Upsert is last-write-wins: concurrent admin edits are allowed and
// the newest one sticks.
func (r *repository) Upsert(ctx context.Context, actionKey, actionName string, costValue int64, description string) (*ActionCost, error) {
	ac := &ActionCost{}
	var desc sql.NullString
	if description != "" {
		desc = sql.NullString{String: description, Valid: true}
	}

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO action_costs (action_key, action_name, cost, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (action_key) DO UPDATE
		SET action_name = EXCLUDED.action_name,
		    cost = EXCLUDED.cost,
		    description = EXCLUDED.description,
		    updated_at = NOW()
		RETURNING action_key, action_name, cost, is_active, description, updated_at
	`, actionKey, actionName, costValue, desc).StructScan(ac)
	if err != nil {
		return nil, err
	}
	return ac, nil
}

func (r *repository) SetActive(ctx context.Context, actionKey string, active bool) (*ActionCost, error) {
	ac := &ActionCost{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE action_costs
		SET is_active = $1, updated_at = NOW()
		WHERE action_key = $2
		RETURNING action_key, action_name, cost, is_active, description, updated_at
	`, active, actionKey).StructScan(ac)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ac, nil
}
