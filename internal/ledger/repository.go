package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// FindUnexpired loads every live entry for the user restricted to the
// given identifier types. A single search carries a handful of
// identifiers, so exact value matching happens in memory afterwards.
func (r *repository) FindUnexpired(ctx context.Context, userID int, parameterTypes []string) ([]Entry, error) {
	if len(parameterTypes) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, parameter_type, parameter_value, expires_at, created_at
		FROM access_ledger
		WHERE user_id = $1
		  AND parameter_type = ANY($2)
		  AND expires_at > NOW()
	`, userID, pq.Array(parameterTypes))
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// InsertBatch records newly billed tuples in one multi-row insert.
// expires_at is fixed here and never renewed by later matches.
func (r *repository) InsertBatch(ctx context.Context, userID int, tuples []Tuple, expiresAt time.Time) error {
	if len(tuples) == 0 {
		return nil
	}

	values := make([]string, 0, len(tuples))
	args := make([]interface{}, 0, 2+2*len(tuples))
	args = append(args, userID, expiresAt)
	for i, tup := range tuples {
		values = append(values, fmt.Sprintf("($1, $%d, $%d, $2)", 2*i+3, 2*i+4))
		args = append(args, tup.ParameterType, tup.ParameterValue)
	}

	query := fmt.Sprintf(
		`INSERT INTO access_ledger (user_id, parameter_type, parameter_value, expires_at) VALUES %s`,
		strings.Join(values, ", "),
	)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// CoveredSet matches candidate tuples against unexpired entries and
// returns the set of tuple keys already paid for. Pure and
// order-independent.
func CoveredSet(entries []Entry, tuples []Tuple) map[string]bool {
	stored := make(map[string]bool, len(entries))
	for _, e := range entries {
		stored[e.ParameterType+":"+e.ParameterValue] = true
	}

	covered := make(map[string]bool)
	for _, tup := range tuples {
		if stored[tup.Key()] {
			covered[tup.Key()] = true
		}
	}
	return covered
}
