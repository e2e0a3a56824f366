package snapshotservice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/monthpkg"
)

var hundred = decimal.NewFromInt(100)

// Growth computes absolute and percentage growth of a snapshot aggregate
// between a start point and the newest snapshot.
//
// A nil startDate means "all time", measured from the first snapshot; fewer
// than two snapshots then yield zero growth, since there is no history to
// compare against. A startDate after the last snapshot's month falls back to
// the first snapshot rather than failing.
//
// The percentage denominator is the absolute start value, so a base that
// crosses zero (a liability flipping from credit to debt) still produces an
// interpretable sign. A zero start yields a zero percentage.
func Growth(snapshots []domain.MonthlySnapshot, field domain.StatField, startDate *time.Time) domain.GrowthResult {
	zero := domain.GrowthResult{Field: field, Growth: decimal.Zero, Percentage: decimal.Zero}

	if len(snapshots) == 0 {
		return zero
	}

	current := field.Of(snapshots[len(snapshots)-1])

	var startValue decimal.Decimal

	if startDate == nil {
		if len(snapshots) < 2 {
			return zero
		}

		startValue = field.Of(snapshots[0])
	} else {
		startValue = field.Of(snapshotAt(snapshots, monthpkg.FromTime(*startDate)))
	}

	growth := current.Sub(startValue)

	if startValue.IsZero() {
		return domain.GrowthResult{Field: field, Growth: growth, Percentage: decimal.Zero}
	}

	percentage := growth.Div(startValue.Abs()).Mul(hundred)

	return domain.GrowthResult{Field: field, Growth: growth, Percentage: percentage}
}

// snapshotAt returns the first snapshot whose month is not before start,
// falling back to the first snapshot when start is past the whole sequence.
func snapshotAt(snapshots []domain.MonthlySnapshot, start monthpkg.Month) domain.MonthlySnapshot {
	for _, s := range snapshots {
		m, err := monthpkg.Parse(s.Month)
		if err != nil {
			continue
		}

		if !m.Before(start) {
			return s
		}
	}

	return snapshots[0]
}
