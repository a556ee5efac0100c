package service

import (
	"context"
	"errors"
	"testing"

	"tripsplit/internal/codec"
)

func TestExportImportRoundTrip(t *testing.T) {
	sender, cleanupA := setupTestService(t)
	defer cleanupA()
	receiver, cleanupB := setupTestService(t)
	defer cleanupB()
	ctx := context.Background()
	tripID, alice, bob := seedTrip(t, sender)

	if _, err := sender.AddExpense(ctx, tripID, ExpenseInput{
		Title: "Ferry", Amount: 140, PayerID: alice, InvolvedIDs: []string{alice, bob},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	token, err := sender.ExportTrip(tripID, true)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}

	gotID, err := receiver.ImportTrip(ctx, token)
	if err != nil {
		t.Fatalf("ImportTrip failed: %v", err)
	}
	if gotID != tripID {
		t.Errorf("ImportTrip() = %q, want %q", gotID, tripID)
	}

	trip, err := receiver.Trip(tripID)
	if err != nil {
		t.Fatalf("imported trip missing: %v", err)
	}
	if len(trip.Members) != 2 || trip.Expenses.Len() != 1 {
		t.Errorf("imported trip = %d members, %d expenses, want 2 and 1",
			len(trip.Members), trip.Expenses.Len())
	}

	// The embedded profiles came along, names included.
	names := map[string]bool{}
	for _, f := range receiver.Friends() {
		names[f.Name] = true
	}
	if !names["Alice"] || !names["Bob"] {
		t.Errorf("embedded profiles not adopted: %v", names)
	}
}

func TestImportSameTokenTwice(t *testing.T) {
	sender, cleanupA := setupTestService(t)
	defer cleanupA()
	receiver, cleanupB := setupTestService(t)
	defer cleanupB()
	ctx := context.Background()
	tripID, alice, bob := seedTrip(t, sender)

	if _, err := sender.AddExpense(ctx, tripID, ExpenseInput{
		Title: "Dinner", Amount: 90, PayerID: alice, InvolvedIDs: []string{alice, bob},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	token, err := sender.ExportTrip(tripID, true)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}

	for n := 0; n < 2; n++ {
		if _, err := receiver.ImportTrip(ctx, token); err != nil {
			t.Fatalf("ImportTrip #%d failed: %v", n+1, err)
		}
	}

	if got := len(receiver.Trips()); got != 1 {
		t.Fatalf("trips after double import = %d, want 1", got)
	}
	trip, err := receiver.Trip(tripID)
	if err != nil {
		t.Fatalf("Trip failed: %v", err)
	}
	if trip.Expenses.Len() != 1 {
		t.Errorf("expenses after double import = %d, want 1", trip.Expenses.Len())
	}
	if got := len(receiver.Friends()); got != 2 {
		t.Errorf("friends after double import = %d, want 2", got)
	}
}

func TestImportKeepsLocalProfileEdits(t *testing.T) {
	sender, cleanupA := setupTestService(t)
	defer cleanupA()
	receiver, cleanupB := setupTestService(t)
	defer cleanupB()
	ctx := context.Background()
	tripID, alice, _ := seedTrip(t, sender)

	token, err := sender.ExportTrip(tripID, true)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	if _, err := receiver.ImportTrip(ctx, token); err != nil {
		t.Fatalf("ImportTrip failed: %v", err)
	}

	// The receiver renames the adopted profile, then replays the token.
	if _, err := receiver.UpdateFriend(ctx, alice, FriendInput{Name: "Alice W."}); err != nil {
		t.Fatalf("UpdateFriend failed: %v", err)
	}
	if _, err := receiver.ImportTrip(ctx, token); err != nil {
		t.Fatalf("ImportTrip replay failed: %v", err)
	}

	var got string
	for _, f := range receiver.Friends() {
		if f.ID == alice {
			got = f.Name
		}
	}
	if got != "Alice W." {
		t.Errorf("replayed import overwrote the local profile: name = %q", got)
	}
}

func TestExportUnknownTrip(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.ExportTrip("missing", false)
	if !errors.Is(err, ErrTripNotFound) {
		t.Errorf("ExportTrip() error = %v, want ErrTripNotFound", err)
	}
}

func TestImportGarbageLeavesStateUntouched(t *testing.T) {
	svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.ImportTrip(context.Background(), "not a real token ###")
	if !errors.Is(err, codec.ErrInvalidToken) {
		t.Fatalf("ImportTrip() error = %v, want ErrInvalidToken", err)
	}
	if len(svc.Trips()) != 0 || len(svc.Friends()) != 0 {
		t.Error("rejected import still mutated the state")
	}
}

func TestExportWithoutPrivateExpenses(t *testing.T) {
	sender, cleanupA := setupTestService(t)
	defer cleanupA()
	receiver, cleanupB := setupTestService(t)
	defer cleanupB()
	ctx := context.Background()
	tripID, alice, bob := seedTrip(t, sender)

	shared, err := sender.AddExpense(ctx, tripID, ExpenseInput{
		Title: "Camp fee", Amount: 200, PayerID: alice, InvolvedIDs: []string{alice, bob},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	private, err := sender.AddExpense(ctx, tripID, ExpenseInput{
		Title: "Alice's book", Amount: 50, PayerID: alice, InvolvedIDs: []string{alice},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	token, err := sender.ExportTrip(tripID, false)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	if _, err := receiver.ImportTrip(ctx, token); err != nil {
		t.Fatalf("ImportTrip failed: %v", err)
	}

	trip, err := receiver.Trip(tripID)
	if err != nil {
		t.Fatalf("Trip failed: %v", err)
	}
	if trip.Expenses.Get(private.ID) != nil {
		t.Error("solo personal expense crossed devices")
	}
	if trip.Expenses.Get(shared.ID) == nil {
		t.Error("shared expense was withheld")
	}
}
