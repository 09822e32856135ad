package domain

import (
	"regexp"
	"testing"
)

func TestPaymentReference_Format(t *testing.T) {
	ref := PaymentReference("9f8e7d6c5b4a39281716051403020100")

	if ref != "CHAPA-9F8E7D6C5B4A" {
		t.Errorf("unexpected reference %q", ref)
	}
	if !regexp.MustCompile(`^CHAPA-[0-9A-F]{12}$`).MatchString(ref) {
		t.Errorf("reference %q has the wrong shape", ref)
	}
}

func TestPaymentReference_Deterministic(t *testing.T) {
	const id = "0123456789abcdef0123456789abcdef"

	first := PaymentReference(id)
	for i := 0; i < 100; i++ {
		if got := PaymentReference(id); got != first {
			t.Fatalf("reference changed between calls: %q vs %q", first, got)
		}
	}
}

func TestPaymentReference_RoundTripsThroughFragment(t *testing.T) {
	const id = "0123456789abcdef0123456789abcdef"

	frag := ReferenceFragment(PaymentReference(id))
	if frag != "0123456789ab" {
		t.Errorf("fragment %q does not recover the stored prefix", frag)
	}
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	cases := []struct {
		status   PaymentStatus
		terminal bool
	}{
		{PaymentStatusPending, false},
		{PaymentStatusCompleted, true},
		{PaymentStatusFailed, true},
	}
	for _, tc := range cases {
		if got := tc.status.IsTerminal(); got != tc.terminal {
			t.Errorf("%s: IsTerminal() = %v, want %v", tc.status, got, tc.terminal)
		}
	}
}
