// Package model defines the core data types produced by the extraction engine.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies the payment rail inferred from a description.
type PaymentMethod string

// Payment methods, in detection priority order.
const (
	PaymentUPI           PaymentMethod = "UPI"
	PaymentCardPayment   PaymentMethod = "CARD_PAYMENT"
	PaymentATM           PaymentMethod = "ATM"
	PaymentBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentCheque        PaymentMethod = "CHEQUE"
	PaymentOnlineBanking PaymentMethod = "ONLINE_BANKING"
	PaymentCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentOther         PaymentMethod = "OTHER"
)

// Category is a transaction category label. The full set is driven by
// configuration; only labels with special handling are named here.
type Category string

const (
	// CategoryPersonal is assigned only when no other rule matched.
	CategoryPersonal Category = "PERSONAL"
	// CategoryOther is the reserved default when no rule matches at all.
	CategoryOther Category = "OTHER"
)

// AmountRange is a coarse size class for the transaction's active amount.
type AmountRange string

// Amount buckets: <100, [100,1000), [1000,10000), >=10000.
const (
	AmountSmall     AmountRange = "SMALL"
	AmountMedium    AmountRange = "MEDIUM"
	AmountLarge     AmountRange = "LARGE"
	AmountVeryLarge AmountRange = "VERY_LARGE"
)

// Transaction is one enriched statement row. It is constructed once by the
// row decoder and never mutated afterwards.
type Transaction struct {
	DocumentID   string          `json:"document_id"`
	BankName     string          `json:"bank_name"`
	Date         time.Time       `json:"-"`
	MonthYear    string          `json:"month_year"`
	Quarter      string          `json:"quarter"`
	DayOfWeek    string          `json:"day_of_week"`
	IsWeekend    bool            `json:"is_weekend"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
	Method       PaymentMethod   `json:"payment_method"`
	Category     Category        `json:"transaction_category"`
	IsDebit      bool            `json:"is_debit"`
	IsCredit     bool            `json:"is_credit"`
	AmountRange  AmountRange     `json:"amount_range"`
	IsRecurring  bool            `json:"is_recurring"`
	Counterparty *Counterparty   `json:"recipient_bank_details,omitempty"`
}

// ISODate returns the transaction date as an ISO 8601 calendar date.
func (t *Transaction) ISODate() string {
	return t.Date.Format("2006-01-02")
}

// GenerateHash creates a stable content hash for a transaction. Storage uses
// it to keep re-submitted documents from inserting duplicate rows.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		t.DocumentID,
		t.ISODate(),
		t.Description,
		t.Debit.StringFixed(2),
		t.Credit.StringFixed(2),
		t.Balance.StringFixed(2))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
