package enrich

import (
	"strings"

	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/model"
)

// CategoryRule is one entry in the ordered category chain. A rule matches
// when the description contains any of Contains, or starts with any of
// Prefixes.
type CategoryRule struct {
	Label    model.Category
	Contains []string
	Prefixes []string
}

func (r CategoryRule) matches(desc string) bool {
	if containsAny(desc, r.Contains) {
		return true
	}
	for _, p := range r.Prefixes {
		if p != "" && strings.HasPrefix(desc, p) {
			return true
		}
	}
	return false
}

// CategoryClassifier resolves every description to exactly one category by
// walking an ordered rule chain, first match wins. The chain order is a
// deliberate precedence table: PERSONAL sits at the very bottom so that
// person-to-person transfers only win when nothing more specific matched,
// and LOAN_PAYMENT is the only rule using a prefix test.
type CategoryClassifier struct {
	rules []CategoryRule
}

// NewCategoryClassifier assembles the rule chain from configured keyword
// lists in canonical priority order.
func NewCategoryClassifier(k config.Keywords) *CategoryClassifier {
	return &CategoryClassifier{rules: []CategoryRule{
		{Label: "FOOD_DELIVERY", Contains: k.FoodDelivery},
		{Label: "GROCERY", Contains: k.Grocery},
		{Label: "SHOPPING", Contains: k.Shopping},
		{Label: "TRANSPORT", Contains: k.Transport},
		{Label: "HEALTHCARE", Contains: k.Healthcare},
		{Label: "RESTAURANTS", Contains: k.Restaurants},
		{Label: "FRUITS_VEGETABLES", Contains: k.FruitsVegetables},
		{Label: "INTEREST_INCOME", Contains: k.InterestIncome},
		{Label: "RENT", Contains: k.Rent},
		{Label: "SALARY", Contains: []string{"SALARY"}},
		{Label: "RECHARGE", Contains: k.Carriers},
		{Label: "LOAN_PAYMENT", Contains: k.SpecialEMI, Prefixes: k.EMIPrefixes},
		{Label: "CREDIT_CARD_PAYMENT", Contains: k.CreditCardPayment},
		{Label: "SUBSCRIPTION_SERVICES", Contains: k.SubscriptionServices},
		{Label: "UTILITY_BILLS", Contains: k.UtilityBills},
		{Label: "FOODS_DRINKS", Contains: k.FoodsDrinks},
		{Label: "ENTERTAINMENT", Contains: k.Entertainment},
		{Label: "EDUCATION", Contains: k.Education},
		{Label: model.CategoryPersonal, Contains: k.Personal},
	}}
}

// Classify returns the first matching rule's label, or OTHER.
func (c *CategoryClassifier) Classify(desc string) model.Category {
	for _, r := range c.rules {
		if r.matches(desc) {
			return r.Label
		}
	}
	return model.CategoryOther
}

// Rules returns the chain in evaluation order, for introspection.
func (c *CategoryClassifier) Rules() []CategoryRule {
	return c.rules
}
