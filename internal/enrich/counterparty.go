package enrich

import (
	"regexp"
	"strings"

	"github.com/nandakv/paisaflow/internal/model"
)

// CounterpartyParser decodes the structured micro-formats that banks embed
// in transfer descriptions. Parsers are tried in a fixed order; the first
// one whose trigger matches wins. Most descriptions match nothing, which is
// a normal outcome, not an error.
type CounterpartyParser struct {
	personal []string
}

// NewCounterpartyParser builds a parser using the configured
// personal-identifier keywords.
func NewCounterpartyParser(personal []string) *CounterpartyParser {
	return &CounterpartyParser{personal: personal}
}

// Parse dispatches an upper-cased description to the sub-parsers and
// returns a tagged variant, or nil when no micro-format is recognized.
func (p *CounterpartyParser) Parse(desc string) *model.Counterparty {
	if desc == "" {
		return nil
	}
	if d := p.parseUPI(desc); d != nil {
		return d
	}
	if d := parseBankTransfer(desc); d != nil {
		return d
	}
	if d := parseATM(desc); d != nil {
		return d
	}
	if d := parseCheque(desc); d != nil {
		return d
	}
	return nil
}

// segment returns the i-th "/"-delimited segment or "" when the split is
// shorter than the format promises. Bank statements truncate these fields
// freely, so missing positions are never an error.
func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// parseUPI decodes descriptions like
// "UPI/P2A/1234567890/JOHN DOE//HDFC". Positions: source, target
// identifier, transaction id, recipient name, (reserved), bank name.
func (p *CounterpartyParser) parseUPI(desc string) *model.Counterparty {
	if !strings.Contains(desc, "/UPI") && !strings.HasPrefix(desc, "UPI/") {
		return nil
	}
	parts := strings.Split(desc, "/")
	if len(parts) < 2 {
		return nil
	}

	recipient := segment(parts, 3)
	return &model.Counterparty{
		Kind: model.CounterpartyUPI,
		UPI: &model.UPIDetails{
			Source:        segment(parts, 0),
			SendTo:        p.recipientType(segment(parts, 1), recipient),
			TransactionID: segment(parts, 2),
			RecipientName: titleCase(recipient),
			BankName:      titleCase(segment(parts, 5)),
		},
	}
}

// recipientType resolves the UPI sendTo field. A recipient name matching a
// personal-identifier keyword forces PERSONAL; otherwise the target
// identifier prefix decides: P2P is person-to-person, P2M and P2A are
// merchant/account payments.
func (p *CounterpartyParser) recipientType(target, recipient string) string {
	if containsAny(recipient, p.personal) {
		return "PERSONAL"
	}
	if strings.HasPrefix(target, "P2P") || containsAny(target, p.personal) {
		return "PERSONAL"
	}
	if strings.HasPrefix(target, "P2M") || strings.HasPrefix(target, "P2A") {
		return "MERCHANT"
	}
	return ""
}

// parseBankTransfer decodes NEFT/IMPS/RTGS descriptions. Positions: source,
// banking identifier, transaction id, recipient name, bank name.
func parseBankTransfer(desc string) *model.Counterparty {
	if !containsAny(desc, []string{"NEFT", "IMPS", "RTGS"}) {
		return nil
	}
	parts := strings.Split(desc, "/")
	if len(parts) < 2 {
		return nil
	}

	var bankingType string
	switch segment(parts, 1) {
	case "MB":
		bankingType = "Mobile Banking"
	case "IB":
		bankingType = "Internet Banking"
	default:
		bankingType = "Other Transfer"
	}

	return &model.Counterparty{
		Kind: model.CounterpartyBankTransfer,
		BankTransfer: &model.BankTransferDetails{
			Source:        segment(parts, 0),
			BankingType:   bankingType,
			TransactionID: segment(parts, 2),
			RecipientName: titleCase(segment(parts, 3)),
			BankName:      titleCase(segment(parts, 4)),
		},
	}
}

// parseATM decodes ATM withdrawal descriptions. Axis statements omit the
// ATM name but carry terminal and reference ids at shifted offsets; the
// generic layout carries the ATM name and location only. Any other shape
// fails closed and yields no detail rather than guessing offsets.
func parseATM(desc string) *model.Counterparty {
	if !strings.Contains(desc, "ATM-") {
		return nil
	}
	parts := strings.Split(desc, "/")

	details := &model.ATMDetails{}
	switch {
	case strings.Contains(segment(parts, 0), "AXIS"):
		if len(parts) < 5 {
			return nil
		}
		details.TerminalID = strings.TrimSpace(parts[1])
		details.ReferenceID = strings.TrimSpace(parts[2])
		details.Location = strings.TrimSpace(parts[4])
	default:
		if len(parts) < 3 {
			return nil
		}
		details.ATMName = strings.TrimSpace(parts[1])
		details.Location = strings.TrimSpace(parts[2])
	}

	return &model.Counterparty{Kind: model.CounterpartyATM, ATM: details}
}

var (
	chequeNumberRe = regexp.MustCompile(`CHQ\s*(\d+)`)
	// Bank name fallbacks: cheque-number-then-bank, then bank-then-CHQ.
	chequeBankRes = []*regexp.Regexp{
		regexp.MustCompile(`CHQ\s*\d+\s*([A-Z]+)`),
		regexp.MustCompile(`CHEQUE\s*\d+\s*([A-Z]+)`),
		regexp.MustCompile(`([A-Z]+)\s*CHQ`),
	}
)

// parseCheque extracts a cheque number and bank name; either may be absent.
func parseCheque(desc string) *model.Counterparty {
	if !strings.Contains(desc, "CHQ") && !strings.Contains(desc, "CHEQUE") {
		return nil
	}

	details := &model.ChequeDetails{}
	if m := chequeNumberRe.FindStringSubmatch(desc); m != nil {
		details.ChequeNumber = m[1]
	}
	for _, re := range chequeBankRes {
		if m := re.FindStringSubmatch(desc); m != nil && m[1] != "CHQ" {
			details.BankName = titleCase(m[1])
			break
		}
	}

	return &model.Counterparty{Kind: model.CounterpartyCheque, Cheque: details}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// titleCase renders an upper-cased field like "JOHN DOE" as "John Doe".
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
