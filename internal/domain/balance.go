package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBalanceNotFound indicates that no balance entry exists for the given account and date.
	ErrBalanceNotFound = errors.New("balance entry not found")
	// ErrInvalidDate indicates that a date could not be parsed as a calendar day.
	ErrInvalidDate = errors.New("invalid date")
)

// BalanceEntry records the observed value of an account on one calendar day.
//
// Dates carry no time of day and are normalized to midnight UTC. An account
// has at most one entry per date; the newest entry for a date replaces the
// previous observation.
type BalanceEntry struct {
	AccountID int32           `json:"account_id"`
	Date      time.Time       `json:"date"`
	Value     decimal.Decimal `json:"value"`
}

// DateLayout is the wire format of balance entry dates.
const DateLayout = "2006-01-02"

// NormalizeDate strips the time of day and location from t.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
