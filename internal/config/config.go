package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

// Config holds application level configuration loaded from flags and environment.
type Config struct {
	ItemsFile      string
	BoxesFile      string
	SeedFile       string
	DatabaseURI    string
	DeliveryFee    decimal.Decimal
	DeliveryRadius int
	MaxOwing       decimal.Decimal
	SessionSecret  string
	SessionTTL     time.Duration
	CardChecksum   bool
	LogLevel       slog.Level
}

const (
	defaultItemsFile      = "static/veggies.txt"
	defaultBoxesFile      = "static/premadeboxes.txt"
	defaultSeedFile       = "static/seed.yaml"
	defaultDeliveryFee    = "10.00"
	defaultDeliveryRadius = 20
	defaultMaxOwing       = "100.00"
	defaultSessionSecret  = "change-me-in-production"
	defaultSessionTTL     = 24 * time.Hour
	defaultLogLevel       = "info"
)

const (
	flagItemsFile         = "items-file"
	flagBoxesFile         = "boxes-file"
	flagSeedFile          = "seed-file"
	flagDatabaseURI       = "database-uri"
	flagDeliveryFee       = "delivery-fee"
	flagDeliveryRadius    = "delivery-radius"
	flagMaxOwing          = "max-owing"
	flagSessionSecret     = "session-secret"
	flagSessionSecretFile = "session-secret-file"
	flagSessionTTL        = "session-ttl"
	flagCardChecksum      = "card-checksum"
	flagLogLevel          = "log-level"
)

// Flags returns the global flags understood by FromContext.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagItemsFile, Value: defaultItemsFile, EnvVars: []string{"CATALOG_ITEMS_FILE"}, Usage: "vegetable price list"},
		&cli.StringFlag{Name: flagBoxesFile, Value: defaultBoxesFile, EnvVars: []string{"CATALOG_BOXES_FILE"}, Usage: "premade box definitions"},
		&cli.StringFlag{Name: flagSeedFile, Value: defaultSeedFile, EnvVars: []string{"SEED_FILE"}, Usage: "YAML accounts imported by the seed command"},
		&cli.StringFlag{Name: flagDatabaseURI, Aliases: []string{"d"}, EnvVars: []string{"DATABASE_URI"}, Usage: "PostgreSQL DSN, in-memory store when empty"},
		&cli.StringFlag{Name: flagDeliveryFee, Value: defaultDeliveryFee, EnvVars: []string{"DELIVERY_FEE"}, Usage: "flat delivery fee"},
		&cli.IntFlag{Name: flagDeliveryRadius, Value: defaultDeliveryRadius, EnvVars: []string{"DELIVERY_RADIUS_KM"}, Usage: "maximum delivery distance in km"},
		&cli.StringFlag{Name: flagMaxOwing, Value: defaultMaxOwing, EnvVars: []string{"MAX_OWING"}, Usage: "default credit limit for seeded customers"},
		&cli.StringFlag{Name: flagSessionSecret, Value: defaultSessionSecret, EnvVars: []string{"SESSION_SECRET"}, Usage: "secret for signing session tokens"},
		&cli.StringFlag{Name: flagSessionSecretFile, EnvVars: []string{"SESSION_SECRET_FILE"}, Usage: "file holding the session secret"},
		&cli.DurationFlag{Name: flagSessionTTL, Value: defaultSessionTTL, EnvVars: []string{"SESSION_TTL"}, Usage: "session token lifetime"},
		&cli.BoolFlag{Name: flagCardChecksum, EnvVars: []string{"CARD_CHECKSUM"}, Usage: "require card numbers to pass the Luhn check"},
		&cli.StringFlag{Name: flagLogLevel, Value: defaultLogLevel, EnvVars: []string{"LOG_LEVEL"}, Usage: "debug, info, warn or error"},
	}
}

// FromContext builds Config from parsed flags.
func FromContext(c *cli.Context) (*Config, error) {
	cfg := &Config{
		ItemsFile:      strings.TrimSpace(c.String(flagItemsFile)),
		BoxesFile:      strings.TrimSpace(c.String(flagBoxesFile)),
		SeedFile:       strings.TrimSpace(c.String(flagSeedFile)),
		DatabaseURI:    strings.TrimSpace(c.String(flagDatabaseURI)),
		DeliveryRadius: c.Int(flagDeliveryRadius),
		SessionSecret:  c.String(flagSessionSecret),
		SessionTTL:     c.Duration(flagSessionTTL),
		CardChecksum:   c.Bool(flagCardChecksum),
	}

	var err error

	if cfg.DeliveryFee, err = decimal.NewFromString(strings.TrimSpace(c.String(flagDeliveryFee))); err != nil {
		return nil, fmt.Errorf("invalid delivery fee: %w", err)
	}

	if cfg.MaxOwing, err = decimal.NewFromString(strings.TrimSpace(c.String(flagMaxOwing))); err != nil {
		return nil, fmt.Errorf("invalid max owing: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(c.String(flagLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile := c.String(flagSessionSecretFile); secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	return cfg, cfg.normalize()
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	cfg := &Config{
		ItemsFile:      defaultItemsFile,
		BoxesFile:      defaultBoxesFile,
		SeedFile:       defaultSeedFile,
		DeliveryFee:    decimal.RequireFromString(defaultDeliveryFee),
		DeliveryRadius: defaultDeliveryRadius,
		MaxOwing:       decimal.RequireFromString(defaultMaxOwing),
		SessionSecret:  defaultSessionSecret,
		SessionTTL:     defaultSessionTTL,
		LogLevel:       slog.LevelInfo,
	}
	return cfg
}

func (cfg *Config) normalize() error {
	if cfg.ItemsFile == "" {
		cfg.ItemsFile = defaultItemsFile
	}

	if cfg.BoxesFile == "" {
		cfg.BoxesFile = defaultBoxesFile
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = defaultSessionSecret
	}

	if cfg.DeliveryFee.IsNegative() {
		return fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.DeliveryRadius < 0 {
		return fmt.Errorf("delivery radius must not be negative")
	}

	if cfg.MaxOwing.IsNegative() {
		return fmt.Errorf("max owing must not be negative")
	}

	cfg.DeliveryFee = cfg.DeliveryFee.Round(2)
	cfg.MaxOwing = cfg.MaxOwing.Round(2)

	return nil
}
