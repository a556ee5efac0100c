package paycode

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"formatted local number", "081-234-5678", "0812345678"},
		{"international with plus", "+66 81 234 5678", "66812345678"},
		{"parentheses and spaces", "(081) 234 5678", "0812345678"},
		{"already bare", "0812345678", "0812345678"},
		{"no digits", "call me", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.raw); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestProxyTarget(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   string
	}{
		{"local number", "0812345678", "0066812345678"},
		{"calling-code prefixed", "66812345678", "0066812345678"},
		{"already escaped", "0066812345678", "0066812345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := proxyTarget(tt.digits); got != tt.want {
				t.Errorf("proxyTarget(%q) = %q, want %q", tt.digits, got, tt.want)
			}
		})
	}
}

func TestForPhoneDynamic(t *testing.T) {
	got := ForPhone("0812345678", 420.5)

	want := "000201" + // payload format 01
		"010212" + // dynamic: amount embedded
		"29370016A0000006770101110113" + "0066812345678" +
		"5303764" +
		"5406420.50" +
		"5802TH" +
		"6304"
	if got != want {
		t.Errorf("ForPhone() =\n%s\nwant\n%s", got, want)
	}
}

func TestForPhoneStatic(t *testing.T) {
	got := ForPhone("0812345678", 0)

	// Static initiation, no amount element.
	want := "000201" +
		"010211" +
		"29370016A0000006770101110113" + "0066812345678" +
		"5303764" +
		"5802TH" +
		"6304"
	if got != want {
		t.Errorf("ForPhone() =\n%s\nwant\n%s", got, want)
	}
}

func TestForPhoneAmountLengthPrefix(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"single digit", 7, "54047.00"},
		{"two digits", 75, "540575.00"},
		{"thousands", 1234.5, "54071234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForPhone("0812345678", tt.amount)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ForPhone(%v) = %s, want amount element %s", tt.amount, got, tt.want)
			}
		})
	}
}
