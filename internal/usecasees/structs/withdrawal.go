package structs

// WithdrawalRequest is the payout submission body. Exactly one of CVU,
// CLABE or Address is set, depending on the rail.
type WithdrawalRequest struct {
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	Asset         string `json:"asset"`
	Method        string `json:"method,omitempty"`
	Network       string `json:"network,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
	CVU           string `json:"cvu,omitempty"`
	CLABE         string `json:"clabe,omitempty"`
	Address       string `json:"address,omitempty"`
	MaxFee        string `json:"max_fee,omitempty"`
	OriginID      string `json:"origin_id"`
	Description   string `json:"description,omitempty"`
}

type Withdrawal struct {
	WID       string                 `json:"wid"`
	Status    string                 `json:"status"`
	CreatedAt string                 `json:"created_at"`
	Currency  string                 `json:"currency"`
	Method    string                 `json:"method"`
	Amount    string                 `json:"amount"`
	Asset     string                 `json:"asset"`
	Network   string                 `json:"network,omitempty"`
	Protocol  string                 `json:"protocol,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type WithdrawalResponse struct {
	Success bool       `json:"success"`
	Payload Withdrawal `json:"payload"`
}

type MethodDescriptor struct {
	Method          string `json:"method"`
	Name            string `json:"name"`
	Network         string `json:"network,omitempty"`
	Protocol        string `json:"protocol,omitempty"`
	RequiredFields  string `json:"required_fields,omitempty"`
	MinimumAmount   string `json:"minimum_amount,omitempty"`
	MaximumAmount   string `json:"maximum_amount,omitempty"`
	Fee             string `json:"fee,omitempty"`
	EstimatedTimeMs string `json:"estimated_transaction_time,omitempty"`
}

type MethodsResponse struct {
	Success bool               `json:"success"`
	Payload []MethodDescriptor `json:"payload"`
}

// WithdrawalParams is what the claim pipeline hands the dispatcher:
// a resolved destination-currency amount plus the recipient's details.
type WithdrawalParams struct {
	ClaimID       string
	Currency      string
	Amount        float64
	RecipientName string
	Destination   string
	Description   string
}
