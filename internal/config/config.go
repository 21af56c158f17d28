package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/common"
)

// Keywords holds every keyword list the enrichment pipeline depends on.
// All entries are upper-cased at load time; classification compares against
// upper-cased descriptions.
type Keywords struct {
	FoodDelivery         []string `mapstructure:"food_delivery"`
	Grocery              []string `mapstructure:"grocery"`
	Shopping             []string `mapstructure:"shopping"`
	Transport            []string `mapstructure:"transport"`
	Healthcare           []string `mapstructure:"healthcare"`
	Restaurants          []string `mapstructure:"restaurants"`
	FruitsVegetables     []string `mapstructure:"fruits_vegetables"`
	InterestIncome       []string `mapstructure:"interest_income"`
	Rent                 []string `mapstructure:"rent"`
	Carriers             []string `mapstructure:"carriers"`
	EMIPrefixes          []string `mapstructure:"emi_prefixes"`
	SpecialEMI           []string `mapstructure:"special_emi"`
	CreditCardPayment    []string `mapstructure:"credit_card_payment"`
	SubscriptionServices []string `mapstructure:"subscription_services"`
	UtilityBills         []string `mapstructure:"utility_bills"`
	FoodsDrinks          []string `mapstructure:"foods_drinks"`
	Entertainment        []string `mapstructure:"entertainment"`
	Education            []string `mapstructure:"education"`
	Personal             []string `mapstructure:"personal"`
	Recurring            []string `mapstructure:"recurring"`
}

// Database holds storage settings.
type Database struct {
	Path string `mapstructure:"path"`
	// Environment suffixes the transactions table when set to "dev", so
	// test loads never mix with real data.
	Environment string `mapstructure:"environment"`
}

// Config is the full engine configuration, loaded once at startup and
// immutable for the run.
type Config struct {
	// DateFormats are Go time layouts tried in order when parsing date cells.
	DateFormats []string `mapstructure:"date_formats"`
	// Banks are the known bank identifiers matched against document ids.
	Banks []string `mapstructure:"banks"`
	// BankSchemas maps bank identifier -> column role -> header aliases.
	BankSchemas map[string]map[string][]string `mapstructure:"bank_schemas"`
	Keywords    Keywords                       `mapstructure:"keywords"`
	Database    Database                       `mapstructure:"database"`
	// Workers bounds document-level parallelism.
	Workers int `mapstructure:"workers"`
}

// Load unmarshals and validates configuration from viper. Missing or empty
// required lists are fatal: a silently empty keyword list would degrade
// every transaction to OTHER.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath()
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.Banks = upperAll(c.Banks)

	k := &c.Keywords
	for _, list := range []*[]string{
		&k.FoodDelivery, &k.Grocery, &k.Shopping, &k.Transport,
		&k.Healthcare, &k.Restaurants, &k.FruitsVegetables,
		&k.InterestIncome, &k.Rent, &k.Carriers, &k.EMIPrefixes,
		&k.SpecialEMI, &k.CreditCardPayment, &k.SubscriptionServices,
		&k.UtilityBills, &k.FoodsDrinks, &k.Entertainment, &k.Education,
		&k.Personal, &k.Recurring,
	} {
		*list = upperAll(*list)
	}
}

// Validate checks that every required list is present and non-empty.
func (c *Config) Validate() error {
	if len(c.DateFormats) == 0 {
		return fmt.Errorf("%w: date_formats", common.ErrMissingConfig)
	}
	if len(c.Banks) == 0 {
		return fmt.Errorf("%w: banks", common.ErrMissingConfig)
	}
	if len(c.BankSchemas) == 0 {
		return fmt.Errorf("%w: bank_schemas", common.ErrMissingConfig)
	}
	for bank, roles := range c.BankSchemas {
		if len(roles["date"]) == 0 || len(roles["description"]) == 0 {
			return fmt.Errorf("%w: bank %s must configure date and description aliases",
				common.ErrInvalidConfig, bank)
		}
	}

	required := map[string][]string{
		"food_delivery":         c.Keywords.FoodDelivery,
		"grocery":               c.Keywords.Grocery,
		"shopping":              c.Keywords.Shopping,
		"transport":             c.Keywords.Transport,
		"healthcare":            c.Keywords.Healthcare,
		"restaurants":           c.Keywords.Restaurants,
		"fruits_vegetables":     c.Keywords.FruitsVegetables,
		"interest_income":       c.Keywords.InterestIncome,
		"rent":                  c.Keywords.Rent,
		"carriers":              c.Keywords.Carriers,
		"emi_prefixes":          c.Keywords.EMIPrefixes,
		"special_emi":           c.Keywords.SpecialEMI,
		"credit_card_payment":   c.Keywords.CreditCardPayment,
		"subscription_services": c.Keywords.SubscriptionServices,
		"utility_bills":         c.Keywords.UtilityBills,
		"foods_drinks":          c.Keywords.FoodsDrinks,
		"entertainment":         c.Keywords.Entertainment,
		"education":             c.Keywords.Education,
		"personal":              c.Keywords.Personal,
		"recurring":             c.Keywords.Recurring,
	}
	for name, list := range required {
		if len(list) == 0 {
			return fmt.Errorf("%w: keywords.%s", common.ErrMissingConfig, name)
		}
	}

	return nil
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out
}
