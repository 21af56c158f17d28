// Package enrich implements the metadata enrichment pipeline: payment
// method, category, counterparty, amount bucket, and recurring detection
// for decoded statement rows.
package enrich

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/model"
)

var (
	amountMedium    = decimal.NewFromInt(100)
	amountLarge     = decimal.NewFromInt(1000)
	amountVeryLarge = decimal.NewFromInt(10000)
)

// Metadata is the enrichment output merged into a transaction.
type Metadata struct {
	Method       model.PaymentMethod
	Category     model.Category
	AmountRange  model.AmountRange
	Counterparty *model.Counterparty
	IsDebit      bool
	IsCredit     bool
	IsRecurring  bool
}

// Enricher runs the classifiers over a decoded row. It is a pure function
// of its immutable configuration, so a single instance is safe for
// concurrent use across documents.
type Enricher struct {
	categories   *CategoryClassifier
	counterparty *CounterpartyParser
	recurring    []string
}

// New builds an enricher from the configured keyword lists.
func New(k config.Keywords) *Enricher {
	return &Enricher{
		categories:   NewCategoryClassifier(k),
		counterparty: NewCounterpartyParser(k.Personal),
		recurring:    k.Recurring,
	}
}

// Enrich classifies one transaction. The classifiers are independent of
// each other; all string matching runs over the upper-cased description.
func (e *Enricher) Enrich(description string, debit, credit decimal.Decimal) Metadata {
	upper := strings.ToUpper(description)

	isDebit := debit.IsPositive()
	isCredit := credit.IsPositive()
	active := credit
	if isDebit {
		active = debit
	}

	return Metadata{
		Method:       DetectPaymentMethod(upper),
		Category:     e.categories.Classify(upper),
		AmountRange:  BucketAmount(active),
		Counterparty: e.counterparty.Parse(upper),
		IsDebit:      isDebit,
		IsCredit:     isCredit,
		IsRecurring:  containsAny(upper, e.recurring),
	}
}

// DetectPaymentMethod walks the payment-rail priority chain over an
// upper-cased description.
func DetectPaymentMethod(desc string) model.PaymentMethod {
	switch {
	case strings.Contains(desc, "UPI"):
		return model.PaymentUPI
	case strings.Contains(desc, "POS"):
		return model.PaymentCardPayment
	case strings.Contains(desc, "ATM"):
		return model.PaymentATM
	case containsAny(desc, []string{"NEFT", "IMPS", "RTGS"}):
		return model.PaymentBankTransfer
	case strings.Contains(desc, "CHEQUE"), strings.Contains(desc, "CHQ"):
		return model.PaymentCheque
	case strings.Contains(desc, "NETBANKING"), strings.Contains(desc, "IB FUND"):
		return model.PaymentOnlineBanking
	case strings.Contains(desc, "CREDITCARD"):
		return model.PaymentCreditCard
	default:
		return model.PaymentOther
	}
}

// BucketAmount assigns the coarse size class for an amount.
func BucketAmount(amount decimal.Decimal) model.AmountRange {
	switch {
	case amount.LessThan(amountMedium):
		return model.AmountSmall
	case amount.LessThan(amountLarge):
		return model.AmountMedium
	case amount.LessThan(amountVeryLarge):
		return model.AmountLarge
	default:
		return model.AmountVeryLarge
	}
}
