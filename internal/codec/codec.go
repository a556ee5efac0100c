// Package codec serializes trips to and from the portable share token.
//
// A token is the base64 encoding (URL alphabet, no padding) of a JSON
// document carrying one trip plus a snapshot of its member profiles. The
// encoded form contains only URL-safe ASCII, so it survives QR codes,
// messaging apps, and copy/paste unchanged, while the JSON layer underneath
// carries arbitrary Unicode losslessly.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tripsplit/internal/models"
)

// ErrInvalidToken marks a token that cannot be imported: malformed encoding,
// malformed JSON, or a payload that fails validation. Nothing may be merged
// into local state when it is returned.
var ErrInvalidToken = errors.New("invalid or corrupted trip token")

// Payload is a decoded share token: the transferred trip plus the embedded
// member profiles that travelled with it. The profiles are transport-only;
// they are never part of the persisted trip shape.
type Payload struct {
	Trip    *models.Trip
	Members []*models.Friend
}

// Encode renders the trip as a share token. The trip is copied field by
// field, so later filtering or mutation of the result never touches the
// original. When includePrivate is false, solo personal expenses (payer is
// the only involved member) are withheld from the token.
//
// profiles is the sender's snapshot of the member profiles to embed; pass
// nil to embed none.
func Encode(trip *models.Trip, profiles []*models.Friend, includePrivate bool) (string, error) {
	doc, err := json.Marshal(newWireTrip(trip, profiles, includePrivate))
	if err != nil {
		return "", fmt.Errorf("failed to encode trip %s: %w", trip.ID, err)
	}
	return base64.RawURLEncoding.EncodeToString(doc), nil
}

// Decode parses and validates a share token, returning the carried payload.
// Any defect, from bad base64 to a semantically invalid expense, is reported
// as ErrInvalidToken; the payload is only returned when the whole token is
// usable.
func Decode(token string) (*Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var wt wireTrip
	if err := json.Unmarshal(raw, &wt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if err := wt.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return wt.toPayload(), nil
}
