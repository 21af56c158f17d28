package enrich

import (
	"github.com/nandakv/paisaflow/internal/config"
)

// testKeywords returns a small but representative rule configuration used
// across the enrichment tests.
func testKeywords() config.Keywords {
	return config.Keywords{
		FoodDelivery:         []string{"ZOMATO", "SWIGGY"},
		Grocery:              []string{"BIGBASKET", "DMART"},
		Shopping:             []string{"AMAZON", "FLIPKART", "MYNTRA"},
		Transport:            []string{"UBER", "OLA CABS", "IRCTC"},
		Healthcare:           []string{"APOLLO", "PHARMACY"},
		Restaurants:          []string{"BARBEQUE", "DOMINOS"},
		FruitsVegetables:     []string{"FRUITS", "VEGETABLES"},
		InterestIncome:       []string{"SB INT", "INT CREDIT"},
		Rent:                 []string{"HOUSE RENT", "RENTPAY"},
		Carriers:             []string{"AIRTEL", "JIO", "VODAFONE"},
		EMIPrefixes:          []string{"EMI", "ACH-"},
		SpecialEMI:           []string{"BAJAJ FIN"},
		CreditCardPayment:    []string{"CC PAYMENT", "CARD BILL"},
		SubscriptionServices: []string{"NETFLIX", "SPOTIFY"},
		UtilityBills:         []string{"BESCOM", "ELECTRICITY"},
		FoodsDrinks:          []string{"BAKERY", "JUICE"},
		Entertainment:        []string{"BOOKMYSHOW", "PVR"},
		Education:            []string{"UDEMY", "TUITION"},
		Personal:             []string{"RAMESH", "PRIYA"},
		Recurring:            []string{"NETFLIX", "SIP", "INSURANCE"},
	}
}
