package structs

type MetricConst int

const (
	MetricClaimCompleted MetricConst = iota
	MetricClaimFailed
	MetricTradeExecuted
	MetricWithdrawalSubmitted
)

func (m MetricConst) ToString() string {
	switch m {
	case MetricClaimCompleted:
		return "claims_completed_total"
	case MetricClaimFailed:
		return "claims_failed_total"
	case MetricTradeExecuted:
		return "trades_executed_total"
	case MetricWithdrawalSubmitted:
		return "withdrawals_submitted_total"
	}

	return "unknown"
}
