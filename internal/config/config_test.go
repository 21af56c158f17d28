package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/common"
)

func validSettings() map[string]interface{} {
	return map[string]interface{}{
		"date_formats": []string{"02-01-2006"},
		"banks":        []string{"canara", "axis"},
		"bank_schemas": map[string]map[string][]string{
			"canara": {
				"date":        {"txn date"},
				"description": {"particulars"},
				"debit":       {"withdrawal"},
				"credit":      {"deposit"},
				"balance":     {"balance"},
			},
		},
		"keywords": map[string][]string{
			"food_delivery":         {"zomato"},
			"grocery":               {"dmart"},
			"shopping":              {"amazon"},
			"transport":             {"uber"},
			"healthcare":            {"apollo"},
			"restaurants":           {"dominos"},
			"fruits_vegetables":     {"fruits"},
			"interest_income":       {"sb int"},
			"rent":                  {"house rent"},
			"carriers":              {"airtel"},
			"emi_prefixes":          {"emi"},
			"special_emi":           {"bajaj fin"},
			"credit_card_payment":   {"cc payment"},
			"subscription_services": {"netflix"},
			"utility_bills":         {"bescom"},
			"foods_drinks":          {"bakery"},
			"entertainment":         {"pvr"},
			"education":             {"udemy"},
			"personal":              {"ramesh"},
			"recurring":             {"netflix", "sip"},
		},
		"database": map[string]string{
			"path": "/tmp/paisaflow-test.db",
		},
	}
}

func viperWith(settings map[string]interface{}) *viper.Viper {
	v := viper.New()
	for key, value := range settings {
		v.Set(key, value)
	}
	return v
}

func TestLoad(t *testing.T) {
	cfg, err := Load(viperWith(validSettings()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Banks and keywords are upper-cased for matching.
	if cfg.Banks[0] != "CANARA" || cfg.Banks[1] != "AXIS" {
		t.Errorf("Banks = %v, want upper-cased", cfg.Banks)
	}
	if cfg.Keywords.FoodDelivery[0] != "ZOMATO" {
		t.Errorf("FoodDelivery = %v, want upper-cased", cfg.Keywords.FoodDelivery)
	}
	if cfg.Keywords.Recurring[1] != "SIP" {
		t.Errorf("Recurring = %v, want upper-cased", cfg.Keywords.Recurring)
	}

	// Date formats are Go layouts and must pass through untouched.
	if cfg.DateFormats[0] != "02-01-2006" {
		t.Errorf("DateFormats = %v, want layout preserved", cfg.DateFormats)
	}

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want default 4", cfg.Workers)
	}
	if cfg.Database.Path != "/tmp/paisaflow-test.db" {
		t.Errorf("Database.Path = %s, want /tmp/paisaflow-test.db", cfg.Database.Path)
	}
}

func TestLoad_MissingRequiredLists(t *testing.T) {
	tests := []struct {
		name  string
		strip func(map[string]interface{})
	}{
		{name: "date_formats", strip: func(s map[string]interface{}) {
			delete(s, "date_formats")
		}},
		{name: "banks", strip: func(s map[string]interface{}) {
			delete(s, "banks")
		}},
		{name: "bank_schemas", strip: func(s map[string]interface{}) {
			delete(s, "bank_schemas")
		}},
		{name: "keywords.recurring", strip: func(s map[string]interface{}) {
			delete(s["keywords"].(map[string][]string), "recurring")
		}},
		{name: "keywords.personal", strip: func(s map[string]interface{}) {
			s["keywords"].(map[string][]string)["personal"] = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.strip(settings)
			_, err := Load(viperWith(settings))
			if !errors.Is(err, common.ErrMissingConfig) {
				t.Errorf("Load() error = %v, want ErrMissingConfig", err)
			}
		})
	}
}

func TestLoad_SchemaNeedsDateAndDescription(t *testing.T) {
	settings := validSettings()
	settings["bank_schemas"] = map[string]map[string][]string{
		"canara": {"date": {"txn date"}},
	}

	_, err := Load(viperWith(settings))
	if !errors.Is(err, common.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_WorkerOverride(t *testing.T) {
	settings := validSettings()
	settings["workers"] = 8

	cfg, err := Load(viperWith(settings))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
}

func TestLoad_DefaultDatabasePath(t *testing.T) {
	settings := validSettings()
	delete(settings, "database")

	cfg, err := Load(viperWith(settings))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
}
