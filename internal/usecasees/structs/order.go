package structs

// Order is the venue's representation of a placed order. Amounts come
// back as decimal strings.
type Order struct {
	OID            string `json:"oid"`
	Book           string `json:"book"`
	OriginalAmount string `json:"original_amount"`
	UnfilledAmount string `json:"unfilled_amount"`
	OriginalValue  string `json:"original_value"`
	Price          string `json:"price"`
	Side           string `json:"side"`
	Status         string `json:"status"`
	Type           string `json:"type"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type OrderResponse struct {
	Success bool  `json:"success"`
	Payload Order `json:"payload"`
}

type OrderStatusResponse struct {
	Success bool    `json:"success"`
	Payload []Order `json:"payload"`
}

// Fill is one execution record against an order. An order may fill in
// several parts; fills are read-only once the venue creates them.
type Fill struct {
	Book          string `json:"book"`
	Major         string `json:"major"`
	MajorCurrency string `json:"major_currency"`
	Minor         string `json:"minor"`
	MinorCurrency string `json:"minor_currency"`
	FeesAmount    string `json:"fees_amount"`
	FeesCurrency  string `json:"fees_currency"`
	Price         string `json:"price"`
	TID           string `json:"tid"`
	OID           string `json:"oid"`
	Side          string `json:"side"`
	MakerSide     string `json:"maker_side"`
	CreatedAt     string `json:"created_at"`
}

type FillsResponse struct {
	Success bool   `json:"success"`
	Payload []Fill `json:"payload"`
}

type Balance struct {
	Currency  string `json:"currency"`
	Available string `json:"available"`
	Locked    string `json:"locked"`
	Total     string `json:"total"`
}

type BalanceResponse struct {
	Success bool `json:"success"`
	Payload struct {
		Balances []Balance `json:"balances"`
	} `json:"payload"`
}
