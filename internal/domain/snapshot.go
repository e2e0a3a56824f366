package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownStatField indicates an unrecognized snapshot aggregate field name.
	ErrUnknownStatField = errors.New("unknown stat field")
	// ErrSnapshotRebuild indicates that a mutation was durably applied but the
	// snapshot rebuild after it failed. Callers recover by retrying the rebuild.
	ErrSnapshotRebuild = errors.New("mutation applied but snapshot rebuild failed")
)

// MonthlySnapshot aggregates all account values for one calendar month.
//
// Snapshots are derived from balance entries and never stored. Liabilities
// accumulate as positive magnitudes, so NetWorth = Assets - Liabilities.
type MonthlySnapshot struct {
	Month       string          `json:"month"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"net_worth"`
	Breakdown   []AccountValue  `json:"breakdown,omitempty"`
}

// AccountValue is one account's carried-forward contribution to a monthly snapshot.
type AccountValue struct {
	AccountID int32           `json:"account_id"`
	Category  string          `json:"category"`
	Kind      Kind            `json:"kind"`
	Value     decimal.Decimal `json:"value"`
}

// StatField selects which snapshot aggregate a growth query is computed over.
type StatField string

// Supported snapshot aggregate fields.
const (
	StatNetWorth    StatField = "net_worth"
	StatAssets      StatField = "assets"
	StatLiabilities StatField = "liabilities"
)

// ParseStatField validates a snapshot aggregate field name.
func ParseStatField(s string) (StatField, error) {
	switch StatField(s) {
	case StatNetWorth, StatAssets, StatLiabilities:
		return StatField(s), nil
	}

	return "", ErrUnknownStatField
}

// Of returns the selected aggregate of a snapshot.
func (f StatField) Of(s MonthlySnapshot) decimal.Decimal {
	switch f {
	case StatAssets:
		return s.Assets
	case StatLiabilities:
		return s.Liabilities
	default:
		return s.NetWorth
	}
}

// GrowthResult holds absolute and percentage growth of a snapshot aggregate.
type GrowthResult struct {
	Field      StatField       `json:"field"`
	Growth     decimal.Decimal `json:"growth"`
	Percentage decimal.Decimal `json:"percentage"`
}
