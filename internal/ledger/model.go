package ledger

import "time"

// Entry marks one (user, identifier type, normalized value) tuple as
// already paid for until ExpiresAt. Rows are never deleted; expired
// ones are simply ignored by reads.
type Entry struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	ParameterType  string    `db:"parameter_type" json:"parameter_type"`
	ParameterValue string    `db:"parameter_value" json:"parameter_value"`
	ExpiresAt      time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Tuple is the identifier pair a gate attempt wants covered.
type Tuple struct {
	ParameterType  string
	ParameterValue string
}

func (t Tuple) Key() string {
	return t.ParameterType + ":" + t.ParameterValue
}
