package domain

// Transaction is one synthetic ledger line. Amount > 0 is income, < 0 an expense.
type Transaction struct {
	Date     string  `json:"date,omitempty"` // normalized as YYYY-MM-DD
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// Ledger is the base data a store holds for one user.
type Ledger struct {
	Transactions []Transaction `json:"transactions"`
	Currency     string        `json:"currency"`
}

// Clone returns a deep copy so callers can never mutate shared store data.
func (l Ledger) Clone() Ledger {
	out := Ledger{Currency: l.Currency, Transactions: make([]Transaction, len(l.Transactions))}
	copy(out.Transactions, l.Transactions)
	return out
}

// Scenario is the per-request synthetic history, at most 12 entries, newest first.
type Scenario struct {
	Transactions []Transaction `json:"transactions"`
	Currency     string        `json:"currency"`
}
