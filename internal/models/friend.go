package models

// Friend represents one person in the global friend list.
//
// Friends are flat and global: the same Friend can be a member of any number
// of trips, referenced by id. Profile edits are last-writer-wins; there is no
// versioning or conflict tracking on profile fields.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	// Assigned once at creation and stable across trips and devices.
	ID string `json:"id"`

	// Name is the display name of the friend.
	Name string `json:"name"`

	// Phone is the friend's phone number, stored as bare digits.
	// Optional; used as a routing hint when deriving a payment code.
	Phone string `json:"phone,omitempty"`

	// Photo is an opaque encoded image payload for the profile picture.
	Photo string `json:"photo,omitempty"`

	// QRCode is an opaque encoded image of a payment-receiving QR code.
	// When present it takes priority over any phone-derived payment code.
	QRCode string `json:"qr_code,omitempty"`
}

// Clone returns a copy of the friend.
func (f *Friend) Clone() *Friend {
	c := *f
	return &c
}
