// Package seed reads account fixtures used to bootstrap a store.
package seed

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

const dateLayout = "2006-01-02"

// Document is the top level of a seed file.
type Document struct {
	Staff     []StaffRecord    `yaml:"staff"`
	Customers []CustomerRecord `yaml:"customers"`
}

// StaffRecord describes one employee. Password is plain text and hashed on import.
type StaffRecord struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Department string `yaml:"department"`
	Joined     string `yaml:"joined"`
}

// CustomerRecord describes one account. Amounts are decimal strings.
type CustomerRecord struct {
	ID           string `yaml:"id"`
	Kind         string `yaml:"kind"`
	Name         string `yaml:"name"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Address      string `yaml:"address"`
	Balance      string `yaml:"balance"`
	MaxOwing     string `yaml:"max_owing"`
	DiscountRate string `yaml:"discount_rate"`
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seed file %s: %w", path, domainErrors.ErrConfigurationNotFound)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("%w: seed: %v", domainErrors.ErrConfigurationParse, err)
	}
	return &doc, nil
}

// JoinedAt parses the joined date; an empty date yields the zero time.
func (r StaffRecord) JoinedAt() (time.Time, error) {
	if strings.TrimSpace(r.Joined) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(r.Joined))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: staff %s joined: %v", domainErrors.ErrConfigurationParse, r.ID, err)
	}
	return t, nil
}

// Profile converts the record into a customer profile. An empty max_owing
// falls back to defaultMaxOwing.
func (r CustomerRecord) Profile(defaultMaxOwing decimal.Decimal) (model.CustomerProfile, error) {
	balance, err := amount(r.Balance, decimal.Zero)
	if err != nil {
		return model.CustomerProfile{}, r.fieldError("balance", err)
	}
	maxOwing, err := amount(r.MaxOwing, defaultMaxOwing)
	if err != nil {
		return model.CustomerProfile{}, r.fieldError("max_owing", err)
	}
	rate, err := amount(r.DiscountRate, decimal.Zero)
	if err != nil {
		return model.CustomerProfile{}, r.fieldError("discount_rate", err)
	}
	return model.CustomerProfile{
		ID:           r.ID,
		Kind:         model.CustomerKind(strings.ToLower(strings.TrimSpace(r.Kind))),
		Name:         r.Name,
		Username:     r.Username,
		Address:      r.Address,
		Balance:      balance,
		MaxOwing:     maxOwing,
		DiscountRate: rate,
	}, nil
}

func (r CustomerRecord) fieldError(field string, err error) error {
	return fmt.Errorf("%w: customer %s %s: %v", domainErrors.ErrConfigurationParse, r.ID, field, err)
}

func amount(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return decimal.NewFromString(raw)
}
