package cost

import (
	"database/sql"
	"time"
)

// ActionCost is one mutable pricing row. ActionKey matches the
// identifier type being billed (NAME, PHONE, EMAIL, FACEBOOK).
type ActionCost struct {
	ActionKey   string         `db:"action_key" json:"action_key"`
	ActionName  string         `db:"action_name" json:"action_name"`
	Cost        int64          `db:"cost" json:"cost"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
