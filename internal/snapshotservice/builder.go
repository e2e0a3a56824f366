// Package snapshotservice derives monthly net worth snapshots from account
// balance history and answers growth queries against them.
package snapshotservice

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwtrack/networth/internal/domain"
	"github.com/nwtrack/networth/pkg/monthpkg"
)

// Warning reports a record that was excluded from aggregation.
// Bad records never abort a build; they are skipped and surfaced here.
type Warning struct {
	AccountID int32
	Reason    string
}

// Build computes the ordered monthly snapshot sequence for the given accounts
// and their date-ascending balance histories.
//
// The sequence spans every month from the earliest balance entry to the month
// of now, with no gaps. Each account contributes its latest entry dated at or
// before the end of a month (carry-forward); before its first entry it
// contributes nothing. Liability values accumulate as positive magnitudes, so
// NetWorth = Assets - Liabilities for every snapshot.
//
// Balance history is read as stored: an account deleted upstream is simply
// absent from accounts and balancesByAccount, and none of its former entries
// contribute to any month.
func Build(
	accounts []domain.Account,
	balancesByAccount map[int32][]domain.BalanceEntry,
	categories []domain.Category,
	now time.Time,
) ([]domain.MonthlySnapshot, []Warning) {
	var warnings []Warning

	kinds := make(map[string]domain.Kind, len(categories))
	for _, c := range categories {
		kinds[c.Key] = c.Kind
	}

	type tracked struct {
		account domain.Account
		kind    domain.Kind
		entries []domain.BalanceEntry
	}

	var (
		trackedAccounts []tracked
		haveStart       bool
		start           monthpkg.Month
	)

	for _, a := range accounts {
		kind, ok := kinds[a.Category]
		if !ok {
			warnings = append(warnings, Warning{
				AccountID: a.ID,
				Reason:    "account category " + a.Category + " cannot be resolved to a kind",
			})

			continue
		}

		all := balancesByAccount[a.ID]
		entries := make([]domain.BalanceEntry, 0, len(all))

		for _, e := range all {
			if e.Date.IsZero() {
				warnings = append(warnings, Warning{
					AccountID: a.ID,
					Reason:    "balance entry has no valid date",
				})

				continue
			}

			entries = append(entries, e)
		}

		if len(entries) > 0 {
			first := monthpkg.FromTime(entries[0].Date)
			if !haveStart || first.Before(start) {
				haveStart = true
				start = first
			}
		}

		trackedAccounts = append(trackedAccounts, tracked{account: a, kind: kind, entries: entries})
	}

	if !haveStart {
		return nil, warnings
	}

	end := monthpkg.FromTime(now)

	var snapshots []domain.MonthlySnapshot

	for m := start; !m.After(end); m = m.Next() {
		lastDay := m.LastDay()

		assets := decimal.Zero
		liabilities := decimal.Zero

		var breakdown []domain.AccountValue

		for _, ta := range trackedAccounts {
			value, ok := carryValue(ta.entries, lastDay)
			if !ok {
				continue
			}

			if ta.kind == domain.KindLiability {
				liabilities = liabilities.Add(value)
			} else {
				assets = assets.Add(value)
			}

			breakdown = append(breakdown, domain.AccountValue{
				AccountID: ta.account.ID,
				Category:  ta.account.Category,
				Kind:      ta.kind,
				Value:     value,
			})
		}

		snapshots = append(snapshots, domain.MonthlySnapshot{
			Month:       m.String(),
			Assets:      assets,
			Liabilities: liabilities,
			NetWorth:    assets.Sub(liabilities),
			Breakdown:   breakdown,
		})
	}

	return snapshots, warnings
}

// carryValue returns the value of the latest entry dated at or before lastDay.
// Entries must be sorted by date ascending.
func carryValue(entries []domain.BalanceEntry, lastDay time.Time) (decimal.Decimal, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Date.After(lastDay)
	})

	if idx == 0 {
		return decimal.Zero, false
	}

	return entries[idx-1].Value, true
}
