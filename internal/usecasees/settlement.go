package usecasees

import (
	"math"
	"strconv"
	"strings"

	"remesa/internal/usecasees/structs"
)

// AmountReceived sums what the account actually received in the given
// currency across a set of fills. A buy-side fill pays out the book's
// major currency, a sell-side fill the minor. Currency codes match
// case-insensitively. Zero means no fill paid out in that currency;
// callers treat that as a failure, not a valid zero trade.
func AmountReceived(fills []structs.Fill, currency string) float64 {
	var total float64

	for _, fill := range fills {
		switch fill.Side {
		case SideBuy:
			if strings.EqualFold(fill.MajorCurrency, currency) {
				total += math.Abs(parseAmount(fill.Major))
			}
		case SideSell:
			if strings.EqualFold(fill.MinorCurrency, currency) {
				total += math.Abs(parseAmount(fill.Minor))
			}
		}
	}

	return total
}

// TotalFee sums the absolute fee of each fill. No currency conversion
// is applied; the caller tracks fee currency when aggregating legs
// with different fee currencies.
func TotalFee(fills []structs.Fill) float64 {
	var total float64

	for _, fill := range fills {
		total += math.Abs(parseAmount(fill.FeesAmount))
	}

	return total
}

// ExecutedRate is destination/source. Undefined for a zero source
// amount; the caller guards.
func ExecutedRate(sourceAmount, destinationReceived float64) float64 {
	return destinationReceived / sourceAmount
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}
