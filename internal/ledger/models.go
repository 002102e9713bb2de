package ledger

// Transaction is a transaction that was screened before it reached the contract. The
// contract records it as given.
type Transaction struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    uint64 `json:"amount"`
	Timestamp uint64 `json:"timestamp"`
}

// Entry is a ledger record and its position.
type Entry struct {
	Sequence    uint64      `json:"sequence"`
	Transaction Transaction `json:"transaction"`
}
