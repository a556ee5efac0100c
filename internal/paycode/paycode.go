// Package paycode derives payment QR payloads from a friend's payment hints.
//
// The payload follows the tag-length-value layout used by national instant
// payment QR schemes: every element is a two-character tag, a two-digit
// value length, and the value itself. The merchant account element nests the
// application id and the phone-derived proxy target, and the payload ends
// with the fixed CRC tag marker.
//
// TODO: append the CRC-16/CCITT checksum digits after the closing tag once
// payloads need to scan against real banking apps.
package paycode

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tagPayloadFormat   = "00"
	tagInitiation      = "01"
	tagMerchantAccount = "29"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"

	subtagApplicationID = "00"
	subtagProxyTarget   = "01"

	payloadFormat     = "01"
	initiationStatic  = "11"
	initiationDynamic = "12"
	applicationID     = "A000000677010111"
	currencyNumeric   = "764"
	countryCode       = "TH"
	closingTag        = "6304"

	// A proxy target is the 2-digit escape, the calling code, and the
	// subscriber number, left-padded to this width.
	proxyWidth = 13

	callingCode = "66"
)

// NormalizePhone reduces a raw phone string to bare digits. This is the form
// stored on a Friend profile; formatting characters and the leading plus are
// input noise.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ForPhone builds the payload addressed to a phone number. A positive amount
// is embedded and marks the payload dynamic (amount pre-filled on the
// payer's screen); a zero amount produces a static payload the payer
// completes themselves.
func ForPhone(phone string, amount float64) string {
	var b strings.Builder

	b.WriteString(element(tagPayloadFormat, payloadFormat))
	if amount > 0 {
		b.WriteString(element(tagInitiation, initiationDynamic))
	} else {
		b.WriteString(element(tagInitiation, initiationStatic))
	}

	account := element(subtagApplicationID, applicationID) +
		element(subtagProxyTarget, proxyTarget(NormalizePhone(phone)))
	b.WriteString(element(tagMerchantAccount, account))

	b.WriteString(element(tagCurrency, currencyNumeric))
	if amount > 0 {
		b.WriteString(element(tagAmount, decimal.NewFromFloat(amount).StringFixed(2)))
	}
	b.WriteString(element(tagCountry, countryCode))
	b.WriteString(closingTag)

	return b.String()
}

// element renders one tag-length-value element. The length is the rendered
// value's length in characters, zero-padded to two digits.
func element(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// proxyTarget converts bare digits to the routing proxy embedded in the
// merchant account element: the local leading zero is swapped for the
// calling code and the result is left-padded with zeros to the fixed width.
func proxyTarget(digits string) string {
	d := strings.TrimPrefix(digits, "00")
	switch {
	case strings.HasPrefix(d, "0"):
		d = callingCode + d[1:]
	case !strings.HasPrefix(d, callingCode):
		d = callingCode + d
	}
	for len(d) < proxyWidth {
		d = "0" + d
	}
	return d
}
