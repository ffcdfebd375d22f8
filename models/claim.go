package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
)

// Metadata is a free-form jsonb column. Updates merge into the stored
// document, they never replace it.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = Metadata{}
		return nil
	}

	return errors.Errorf("unsupported metadata source type %T", src)
}

type Claim struct {
	ID          string         `db:"id"`
	SenderID    string         `db:"sender_id"`
	RecipientID sql.NullString `db:"recipient_id"`
	Amount      float64        `db:"amount"`
	Currency    string         `db:"currency"`
	Status      string         `db:"status"`
	BankDetails types.JSONText `db:"bank_details"`
	Metadata    Metadata       `db:"metadata"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
