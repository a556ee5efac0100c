package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name         string
		balances     map[string]float64
		wantErr      error
		validateFunc func(t *testing.T, transfers []Transfer)
	}{
		{
			name:     "two debtors one creditor",
			balances: map[string]float64{"a": 100, "b": -60, "c": -40},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				// b owes the most, so b pays first.
				if len(transfers) != 2 {
					t.Fatalf("transfers = %v, want 2", transfers)
				}
				if transfers[0].FromID != "b" || transfers[0].ToID != "a" || math.Abs(transfers[0].Amount-60) > 0.01 {
					t.Errorf("first transfer = %+v, want b->a 60", transfers[0])
				}
				if transfers[1].FromID != "c" || transfers[1].ToID != "a" || math.Abs(transfers[1].Amount-40) > 0.01 {
					t.Errorf("second transfer = %+v, want c->a 40", transfers[1])
				}
			},
		},
		{
			name:     "one debtor two creditors",
			balances: map[string]float64{"a": 30, "b": 20, "c": -50},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("transfers = %v, want 2", transfers)
				}
				if transfers[0].FromID != "c" || transfers[0].ToID != "a" || math.Abs(transfers[0].Amount-30) > 0.01 {
					t.Errorf("first transfer = %+v, want c->a 30", transfers[0])
				}
				if transfers[1].FromID != "c" || transfers[1].ToID != "b" || math.Abs(transfers[1].Amount-20) > 0.01 {
					t.Errorf("second transfer = %+v, want c->b 20", transfers[1])
				}
			},
		},
		{
			name:     "equal debts break ties by id",
			balances: map[string]float64{"z": 50, "b": -25, "a": -25},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("transfers = %v, want 2", transfers)
				}
				if transfers[0].FromID != "a" || transfers[1].FromID != "b" {
					t.Errorf("tie-break order = [%s %s], want [a b]", transfers[0].FromID, transfers[1].FromID)
				}
			},
		},
		{
			name:     "already settled",
			balances: map[string]float64{"a": 0, "b": 0},
			wantErr:  ErrNothingToSettle,
		},
		{
			name:     "sub-cent noise is not debt",
			balances: map[string]float64{"a": 0.004, "b": -0.004},
			wantErr:  ErrNothingToSettle,
		},
		{
			name:     "empty balance map",
			balances: map[string]float64{},
			wantErr:  ErrNothingToSettle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := Plan(tt.balances)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Plan() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			tt.validateFunc(t, transfers)
		})
	}
}

func TestPlanSettlesEverything(t *testing.T) {
	balances := map[string]float64{
		"a": 123.45,
		"b": -23.45,
		"c": -80.00,
		"d": -20.00,
		"e": 0.00,
	}

	transfers, err := Plan(balances)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	// Replaying the plan against the balances must leave everyone settled.
	remaining := make(map[string]float64, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, tr := range transfers {
		if tr.Amount < settledEpsilon {
			t.Errorf("transfer below threshold: %+v", tr)
		}
		remaining[tr.FromID] += tr.Amount
		remaining[tr.ToID] -= tr.Amount
	}
	for id, b := range remaining {
		if math.Abs(b) >= settledEpsilon {
			t.Errorf("member %s left with %v after settling", id, b)
		}
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	balances := map[string]float64{"a": 40, "b": 40, "c": -40, "d": -40}

	first, err := Plan(balances)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	for n := 0; n < 10; n++ {
		again, err := Plan(map[string]float64{"a": 40, "b": 40, "c": -40, "d": -40})
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("plan length changed between runs")
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("plan differs between runs: %+v vs %+v", first[i], again[i])
			}
		}
	}
}
