package model

// CounterpartyKind discriminates the counterparty detail variants.
type CounterpartyKind string

// Counterparty variants, one per recognized description micro-format.
const (
	CounterpartyUPI          CounterpartyKind = "UPI"
	CounterpartyBankTransfer CounterpartyKind = "BANK_TRANSFER"
	CounterpartyATM          CounterpartyKind = "ATM"
	CounterpartyCheque       CounterpartyKind = "CHEQUE"
)

// Counterparty is a tagged union of structured counterparty details decoded
// from a transaction description. Exactly one variant field is non-nil, the
// one matching Kind. A nil *Counterparty means no micro-format matched.
type Counterparty struct {
	Kind         CounterpartyKind     `json:"kind"`
	UPI          *UPIDetails          `json:"upi,omitempty"`
	BankTransfer *BankTransferDetails `json:"bank_transfer,omitempty"`
	ATM          *ATMDetails          `json:"atm,omitempty"`
	Cheque       *ChequeDetails       `json:"cheque,omitempty"`
}

// UPIDetails holds the positional fields of a UPI description.
type UPIDetails struct {
	Source        string `json:"source"`
	SendTo        string `json:"sendTo"`
	TransactionID string `json:"transaction_id"`
	RecipientName string `json:"recipient_name"`
	BankName      string `json:"bank_name"`
}

// BankTransferDetails holds the positional fields of a NEFT/IMPS/RTGS
// description.
type BankTransferDetails struct {
	Source        string `json:"source"`
	BankingType   string `json:"banking_type"`
	TransactionID string `json:"transaction_id"`
	RecipientName string `json:"recipient_name"`
	BankName      string `json:"bank_name"`
}

// ATMDetails holds the fields of an ATM withdrawal description.
type ATMDetails struct {
	ATMName     string `json:"atm_name"`
	TerminalID  string `json:"terminal_id"`
	ReferenceID string `json:"reference_id"`
	Location    string `json:"location"`
}

// ChequeDetails holds the fields extracted from a cheque description.
// Either field may be empty when the pattern carried no value.
type ChequeDetails struct {
	ChequeNumber string `json:"cheque_number"`
	BankName     string `json:"bank_name"`
}
