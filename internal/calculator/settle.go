package calculator

import (
	"errors"
	"math"
	"sort"
)

// settledEpsilon is the threshold below which a balance counts as settled.
// Anything under a cent is floating-point noise, not real debt.
const settledEpsilon = 0.01

// ErrNothingToSettle reports that every balance is already within the
// settled threshold, so no transfers are needed.
var ErrNothingToSettle = errors.New("nothing to settle")

// Transfer is one suggested payment from a debtor to a creditor.
type Transfer struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
}

// Plan turns net balances into a short sequence of transfers that settles
// them. Debtors are matched against creditors greedily: most indebted against
// most owed first, with ids breaking ties so the plan is deterministic for a
// given balance map. The result is a good heuristic, not a provably minimal
// transfer count.
func Plan(balances map[string]float64) ([]Transfer, error) {
	type entry struct {
		id      string
		balance float64
	}

	var debtors, creditors []entry
	for id, b := range balances {
		switch {
		case b <= -settledEpsilon:
			debtors = append(debtors, entry{id, b})
		case b >= settledEpsilon:
			creditors = append(creditors, entry{id, b})
		}
	}
	if len(debtors) == 0 && len(creditors) == 0 {
		return nil, ErrNothingToSettle
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance < debtors[j].balance
		}
		return debtors[i].id < debtors[j].id
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}
		return creditors[i].id < creditors[j].id
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(-debtors[i].balance, creditors[j].balance)

		transfers = append(transfers, Transfer{
			FromID: debtors[i].id,
			ToID:   creditors[j].id,
			Amount: amount,
		})

		debtors[i].balance += amount
		creditors[j].balance -= amount

		if -debtors[i].balance < settledEpsilon {
			i++
		}
		if creditors[j].balance < settledEpsilon {
			j++
		}
	}

	return transfers, nil
}
