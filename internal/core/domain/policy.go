package domain

// Fee and commission schedule in basis points. Transfers charge the sender a
// 1% fee; agent cash movements earn the agent a 0.5% commission. Charges
// round up to the next minor unit and are uncapped.
const (
	transferFeeBps     = 100
	agentCommissionBps = 50
)

// Charges is the derived cost of a transaction.
type Charges struct {
	Fee        Money
	Commission Money
}

// ComputeCharges maps (kind, amount) to the fee charged to the source wallet
// and the commission recorded for the initiating agent. It is a pure
// function invoked by the ledger service before persistence; derived
// financial fields are never computed inside the storage layer.
func ComputeCharges(kind TransactionKind, amount Money) Charges {
	switch kind {
	case TransactionKindTransfer:
		return Charges{Fee: amount.PercentCeil(transferFeeBps)}
	case TransactionKindCashIn, TransactionKindCashOut:
		return Charges{Commission: amount.PercentCeil(agentCommissionBps)}
	default:
		return Charges{}
	}
}
