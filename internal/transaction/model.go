package transaction

import (
	"database/sql"
	"time"
)

// State is the transaction lifecycle state. Transitions move toward
// the terminal set and never out of it.
type State string

const (
	StatePending    State = "pending"
	StateAuthorized State = "authorized"
	StateDone       State = "done"
	StateCanceled   State = "canceled"
	StateError      State = "error"
)

// Terminal reports whether no further processor-driven transition may
// occur.
func (s State) Terminal() bool {
	return s == StateDone || s == StateCanceled || s == StateError
}

// CancelBlocked reports whether a user-requested cancel is a no-op.
// Authorized additionally blocks cancel even though the processor can
// still move it.
func (s State) CancelBlocked() bool {
	return s.Terminal() || s == StateAuthorized
}

type Transaction struct {
	ID           int64
	Reference    string
	ProviderID   int64
	Amount       float64
	Currency     string
	State        State
	StateMessage string
	// Gateway transaction id (mihpayid).
	ProviderReference string

	// Settlement reconciliation fields.
	SettledAmount      sql.NullFloat64
	TotalServiceFee    sql.NullFloat64
	SettlementCurrency sql.NullString
	UTRNumber          sql.NullString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRefund is derived: refunds are negative-amount transactions.
func (t *Transaction) IsRefund() bool {
	return t.Amount < 0
}

// Settlement carries the reconciled figures for one transaction.
type Settlement struct {
	NetAmount       float64
	TotalServiceFee float64
	Currency        string
	UTRNumber       string
}
