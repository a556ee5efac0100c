package codec

import (
	"fmt"
	"math"

	"tripsplit/internal/models"
)

// The wire types pin the token schema independently of the domain structs,
// so a decoded document can be validated in full before anything touches
// application state. The "_members" field name sits outside the trip's own
// namespace; readers that only know the trip shape ignore it.
type wireTrip struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Photo    string        `json:"photo,omitempty"`
	Date     int64         `json:"date"`
	Members  []string      `json:"members"`
	Expenses []wireExpense `json:"expenses"`
	Profiles []wireFriend  `json:"_members,omitempty"`
}

type wireExpense struct {
	ID          string   `json:"id"`
	TripID      string   `json:"trip_id,omitempty"`
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	PayerID     string   `json:"payer_id"`
	InvolvedIDs []string `json:"involved_ids"`
	Timestamp   int64    `json:"timestamp"`
	Attachments []string `json:"attachments,omitempty"`
}

type wireFriend struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Photo  string `json:"photo,omitempty"`
	QRCode string `json:"qr_code,omitempty"`
}

func newWireTrip(trip *models.Trip, profiles []*models.Friend, includePrivate bool) wireTrip {
	wt := wireTrip{
		ID:      trip.ID,
		Name:    trip.Name,
		Photo:   trip.Photo,
		Date:    trip.Date,
		Members: append([]string{}, trip.Members...),
	}

	for _, e := range trip.Expenses.All() {
		if !includePrivate && e.IsPrivate() {
			continue
		}
		wt.Expenses = append(wt.Expenses, wireExpense{
			ID:          e.ID,
			TripID:      e.TripID,
			Title:       e.Title,
			Amount:      e.Amount,
			PayerID:     e.PayerID,
			InvolvedIDs: append([]string{}, e.InvolvedIDs...),
			Timestamp:   e.Timestamp,
			Attachments: append([]string{}, e.Attachments...),
		})
	}
	if wt.Expenses == nil {
		wt.Expenses = []wireExpense{}
	}

	for _, f := range profiles {
		wt.Profiles = append(wt.Profiles, wireFriend{
			ID:     f.ID,
			Name:   f.Name,
			Phone:  f.Phone,
			Photo:  f.Photo,
			QRCode: f.QRCode,
		})
	}

	return wt
}

// validate checks the decoded document against the schema invariants before
// any of it is converted to domain values.
func (wt *wireTrip) validate() error {
	if wt.ID == "" {
		return fmt.Errorf("missing trip id")
	}
	for i, e := range wt.Expenses {
		if e.ID == "" {
			return fmt.Errorf("expense %d: missing id", i)
		}
		if e.Title == "" {
			return fmt.Errorf("expense %s: missing title", e.ID)
		}
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount < 0 {
			return fmt.Errorf("expense %s: negative or non-finite amount", e.ID)
		}
		if e.PayerID == "" {
			return fmt.Errorf("expense %s: missing payer", e.ID)
		}
		if len(e.InvolvedIDs) == 0 {
			return fmt.Errorf("expense %s: empty involved set", e.ID)
		}
	}
	for i, f := range wt.Profiles {
		if f.ID == "" {
			return fmt.Errorf("embedded member %d: missing id", i)
		}
	}
	return nil
}

// toPayload converts the validated document to domain values, normalizing as
// it goes: member and involved sets are deduplicated keeping first
// occurrence, and each expense's trip reference is pinned to the carrying
// trip.
func (wt *wireTrip) toPayload() *Payload {
	trip := &models.Trip{
		ID:      wt.ID,
		Name:    wt.Name,
		Photo:   wt.Photo,
		Date:    wt.Date,
		Members: dedup(wt.Members),
	}

	for _, we := range wt.Expenses {
		trip.Expenses.Put(&models.Expense{
			ID:          we.ID,
			TripID:      wt.ID,
			Title:       we.Title,
			Amount:      we.Amount,
			PayerID:     we.PayerID,
			InvolvedIDs: dedup(we.InvolvedIDs),
			Timestamp:   we.Timestamp,
			Attachments: we.Attachments,
		})
	}

	p := &Payload{Trip: trip}
	for _, wf := range wt.Profiles {
		p.Members = append(p.Members, &models.Friend{
			ID:     wf.ID,
			Name:   wf.Name,
			Phone:  wf.Phone,
			Photo:  wf.Photo,
			QRCode: wf.QRCode,
		})
	}
	return p
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
