// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wuwei-shop/storefront/internal/pricing"
)

// Config holds configuration knobs for the HTTP server, pricing policy,
// the payment collaborator and the optional Postgres backend.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal

	FourGeeksAPIBase string
	FourGeeksToken   string
	FourGeeksTest    bool

	// PostgresDSN switches persistence from the in-memory backend to
	// Postgres when non-empty.
	PostgresDSN string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func decenv(key, def string) decimal.Decimal {
	d, err := decimal.NewFromString(getenv(key, def))
	if err != nil {
		d, _ = decimal.NewFromString(def)
	}
	return d
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),

		TaxRate:               decenv("TAX_RATE", "0.08"),
		FreeShippingThreshold: decenv("FREE_SHIPPING_THRESHOLD", "0"),
		FlatShippingRate:      decenv("FLAT_SHIPPING_RATE", "0"),

		FourGeeksAPIBase: getenv("FOURGEEKS_API_BASE", "https://api.4geeks.io/v1"),
		FourGeeksToken:   getenv("FOURGEEKS_API_TOKEN", ""),
		FourGeeksTest:    boolenv("FOURGEEKS_TEST_MODE", true),

		PostgresDSN: getenv("POSTGRES_DSN", ""),
	}
}

// Pricing maps the loaded policy values onto a pricing engine config.
func (c Config) Pricing() pricing.Config {
	return pricing.Config{
		TaxRate:               c.TaxRate,
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingRate:      c.FlatShippingRate,
	}
}
