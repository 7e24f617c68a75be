package constants

import "strings"

type PaymentMethod string

const (
	PaymentCard  PaymentMethod = "CARD"
	PaymentCash  PaymentMethod = "CASH"
	PaymentOther PaymentMethod = "OTHER"
)

var allPaymentMethods = []PaymentMethod{
	PaymentCard,
	PaymentCash,
	PaymentOther,
}

func PaymentMethodsAsStrings() []string {
	result := make([]string, len(allPaymentMethods))
	for i, m := range allPaymentMethods {
		result[i] = string(m)
	}
	return result
}

// CanonicalizePayment maps a free-form payment label onto the stable enum.
// Unknown non-empty values coerce to OTHER; empty stays absent (false).
func CanonicalizePayment(input string) (PaymentMethod, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	// synonyms map
	synonyms := map[string]PaymentMethod{
		"CREDIT":      PaymentCard,
		"CREDIT CARD": PaymentCard,
		"DEBIT":       PaymentCard,
		"DEBIT CARD":  PaymentCard,
		"VISA":        PaymentCard,
		"MASTERCARD":  PaymentCard,
		"AMEX":        PaymentCard,
		"EFECTIVO":    PaymentCash,
	}
	if m, ok := synonyms[normalized]; ok {
		return m, true
	}

	for _, m := range allPaymentMethods {
		if normalized == string(m) {
			return m, true
		}
	}
	return PaymentOther, true
}
