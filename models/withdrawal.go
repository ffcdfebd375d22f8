package models

import "time"

const (
	WithdrawalStatusPending    = "pending"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusComplete   = "complete"
	WithdrawalStatusFailed     = "failed"
)

type Withdrawal struct {
	ID          string    `db:"id"`
	WID         string    `db:"wid"`
	ClaimID     string    `db:"claim_id"`
	Currency    string    `db:"currency"`
	Asset       string    `db:"asset"`
	Amount      float64   `db:"amount"`
	Method      string    `db:"method"`
	Network     string    `db:"network"`
	Protocol    string    `db:"protocol"`
	Destination string    `db:"destination"`
	OriginID    string    `db:"origin_id"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}
