package structs

import "time"

// LegReport captures the terminal state of one leg of a bridged trade.
type LegReport struct {
	OrderID string  `json:"order_id"`
	Book    string  `json:"book"`
	Side    string  `json:"side"`
	Amount  float64 `json:"amount"`
	Price   float64 `json:"price"`
	Status  string  `json:"status"`
	Fee     float64 `json:"fee"`
}

// SettlementResult is computed once both legs' fills are known and is
// immutable after that.
type SettlementResult struct {
	TradeID       string        `json:"trade_id"`
	FromCurrency  string        `json:"from_currency"`
	ToCurrency    string        `json:"to_currency"`
	FromAmount    float64       `json:"from_amount"`
	ToAmount      float64       `json:"to_amount"`
	ExecutedRate  float64       `json:"executed_rate"`
	FirstLeg      LegReport     `json:"first_leg"`
	SecondLeg     LegReport     `json:"second_leg"`
	TotalFee      float64       `json:"total_fee"`
	ExecutionTime time.Duration `json:"execution_time"`
	Timestamp     time.Time     `json:"timestamp"`
}

// BankDetails is the recipient-supplied destination, stored on the
// claim as jsonb. Which identifier is present depends on the currency.
type BankDetails struct {
	AccountHolderName string `json:"accountHolderName"`
	CVU               string `json:"cvu,omitempty"`
	CBU               string `json:"cbu,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	WalletAddress     string `json:"walletAddress,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
}

// Account resolves the destination identifier for the rail.
func (b *BankDetails) Account() string {
	switch {
	case b.CVU != "":
		return b.CVU
	case b.CBU != "":
		return b.CBU
	case b.AccountNumber != "":
		return b.AccountNumber
	default:
		return b.WalletAddress
	}
}

// Redemption is the custody venue's token-burn record.
type Redemption struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	TransactionType string  `json:"transaction_type"`
	Method          string  `json:"method"`
	SummaryStatus   string  `json:"summary_status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type RedemptionResponse struct {
	Success bool       `json:"success"`
	Payload Redemption `json:"payload"`
}
