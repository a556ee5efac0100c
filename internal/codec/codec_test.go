package codec

import (
	"encoding/base64"
	"errors"
	"regexp"
	"testing"

	"tripsplit/internal/models"
)

func testTrip() *models.Trip {
	return &models.Trip{
		ID:      "trip-1",
		Name:    "เชียงใหม่ 2025 ✈",
		Date:    1736000000000,
		Members: []string{"f1", "f2"},
		Expenses: models.NewExpenseList(
			&models.Expense{
				ID:          "e1",
				TripID:      "trip-1",
				Title:       "Khao soi lunch",
				Amount:      340,
				PayerID:     "f1",
				InvolvedIDs: []string{"f1", "f2"},
				Timestamp:   1736000100000,
			},
			&models.Expense{
				ID:          "e2",
				TripID:      "trip-1",
				Title:       "Noëlle's snack",
				Amount:      50,
				PayerID:     "f2",
				InvolvedIDs: []string{"f2"},
				Timestamp:   1736000200000,
			},
		),
	}
}

func testProfiles() []*models.Friend {
	return []*models.Friend{
		{ID: "f1", Name: "สมชาย", Phone: "66812345678"},
		{ID: "f2", Name: "Noëlle", QRCode: "qr-image-payload"},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	trip := testTrip()
	token, err := Encode(trip, testProfiles(), true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if p.Trip.ID != trip.ID || p.Trip.Name != trip.Name || p.Trip.Date != trip.Date {
		t.Errorf("trip header = %+v, want %+v", p.Trip, trip)
	}
	if len(p.Trip.Members) != 2 {
		t.Errorf("members = %v, want [f1 f2]", p.Trip.Members)
	}
	if p.Trip.Expenses.Len() != 2 {
		t.Fatalf("expenses = %d, want 2 (private included)", p.Trip.Expenses.Len())
	}
	got := p.Trip.Expenses.Get("e1")
	if got.Title != "Khao soi lunch" || got.Amount != 340 || got.PayerID != "f1" {
		t.Errorf("expense e1 = %+v", got)
	}

	if len(p.Members) != 2 {
		t.Fatalf("embedded members = %d, want 2", len(p.Members))
	}
	if p.Members[0].Name != "สมชาย" || p.Members[1].QRCode != "qr-image-payload" {
		t.Errorf("embedded profiles lost fields: %+v, %+v", p.Members[0], p.Members[1])
	}
}

func TestEncodeTokenIsTransportSafe(t *testing.T) {
	token, err := Encode(testTrip(), testProfiles(), true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !regexp.MustCompile(`^[A-Za-z0-9_-]+$`).MatchString(token) {
		t.Errorf("token contains characters outside the URL-safe alphabet: %q", token)
	}
}

func TestEncodePrivacyFilter(t *testing.T) {
	trip := testTrip()

	token, err := Encode(trip, nil, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if p.Trip.Expenses.Get("e2") != nil {
		t.Error("solo personal expense e2 leaked into a shared token")
	}
	if p.Trip.Expenses.Get("e1") == nil {
		t.Error("shared expense e1 was filtered out")
	}

	// Filtering happens on the copy only.
	if trip.Expenses.Len() != 2 {
		t.Errorf("Encode() mutated the original trip: %d expenses left", trip.Expenses.Len())
	}
}

func TestEncodePrivacyFilterKeepsPaidForOthers(t *testing.T) {
	trip := &models.Trip{
		ID:      "trip-2",
		Members: []string{"f1", "f2"},
		Expenses: models.NewExpenseList(
			// Paid by f1 but only f2 benefits. Not private.
			&models.Expense{ID: "e1", Title: "Gift", Amount: 25, PayerID: "f1", InvolvedIDs: []string{"f2"}},
		),
	}

	token, err := Encode(trip, nil, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Trip.Expenses.Get("e1") == nil {
		t.Error("expense paid for someone else was treated as private")
	}
}

func tok(doc string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(doc))
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not base64", "%%%not-base64%%%"},
		{"padded base64", "YWJjZA=="},
		{"not json", tok("trip data")},
		{"json array", tok(`[1,2,3]`)},
		{"wrong field type", tok(`{"id":"t1","expenses":[{"id":"e1","title":"x","amount":"abc","payer_id":"p","involved_ids":["p"]}]}`)},
		{"missing trip id", tok(`{"name":"Trip","expenses":[]}`)},
		{"expense missing id", tok(`{"id":"t1","expenses":[{"title":"x","amount":1,"payer_id":"p","involved_ids":["p"]}]}`)},
		{"expense missing title", tok(`{"id":"t1","expenses":[{"id":"e1","amount":1,"payer_id":"p","involved_ids":["p"]}]}`)},
		{"negative amount", tok(`{"id":"t1","expenses":[{"id":"e1","title":"x","amount":-4,"payer_id":"p","involved_ids":["p"]}]}`)},
		{"missing payer", tok(`{"id":"t1","expenses":[{"id":"e1","title":"x","amount":1,"involved_ids":["p"]}]}`)},
		{"empty involved set", tok(`{"id":"t1","expenses":[{"id":"e1","title":"x","amount":1,"payer_id":"p","involved_ids":[]}]}`)},
		{"embedded member without id", tok(`{"id":"t1","expenses":[],"_members":[{"name":"ghost"}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Decode() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestDecodeNormalizes(t *testing.T) {
	doc := `{
		"id": "t1",
		"name": "Trip",
		"members": ["f1", "f2", "f1"],
		"expenses": [
			{"id": "e1", "trip_id": "stale-id", "title": "x", "amount": 10,
			 "payer_id": "f1", "involved_ids": ["f1", "f2", "f1"], "timestamp": 5}
		]
	}`

	p, err := Decode("  " + tok(doc) + "\n")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(p.Trip.Members) != 2 {
		t.Errorf("members not deduplicated: %v", p.Trip.Members)
	}
	e := p.Trip.Expenses.Get("e1")
	if len(e.InvolvedIDs) != 2 {
		t.Errorf("involved ids not deduplicated: %v", e.InvolvedIDs)
	}
	if e.TripID != "t1" {
		t.Errorf("expense trip reference = %q, want pinned to t1", e.TripID)
	}
}

func TestDecodeAcceptsZeroAmount(t *testing.T) {
	doc := `{"id":"t1","expenses":[{"id":"e1","title":"comped","amount":0,"payer_id":"p","involved_ids":["p"]}]}`
	if _, err := Decode(tok(doc)); err != nil {
		t.Errorf("Decode() rejected a zero-amount expense from another device: %v", err)
	}
}
