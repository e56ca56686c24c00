package scheduling

import "testing"

func TestCanTransitionBlock_CancelledIsTerminal(t *testing.T) {
	for _, to := range []BlockStatus{BlockOpen, BlockClosed} {
		if CanTransitionBlock(BlockCancelled, to) {
			t.Fatalf("expected cancelled -> %s to be rejected", to)
		}
	}
	if !CanTransitionBlock(BlockCancelled, BlockCancelled) {
		t.Fatalf("expected cancelled -> cancelled to be a no-op transition")
	}
}

func TestCanTransitionBlock_OpenClosedToggle(t *testing.T) {
	if !CanTransitionBlock(BlockOpen, BlockClosed) || !CanTransitionBlock(BlockClosed, BlockOpen) {
		t.Fatalf("expected open <-> closed toggle")
	}
	if CanTransitionBlock(BlockStatus("archived"), BlockOpen) {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestCanTransitionBooking(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingApproved, true},
		{BookingPending, BookingCancelled, true},
		{BookingApproved, BookingCancelled, true},
		{BookingApproved, BookingPending, false},
		{BookingCancelled, BookingApproved, false},
		{BookingCancelled, BookingPending, false},
	}
	for _, tc := range cases {
		if got := CanTransitionBooking(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseBlockStatus("closed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseBlockStatus("deleted"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseBookingStatus("approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseBookingStatus(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseCapacityPolicy(t *testing.T) {
	p, err := ParseCapacityPolicy("")
	if err != nil || p != CapacityLax {
		t.Fatalf("expected lax default, got %q (%v)", p, err)
	}
	p, err = ParseCapacityPolicy(" Strict ")
	if err != nil || p != CapacityStrict {
		t.Fatalf("expected strict, got %q (%v)", p, err)
	}
	if _, err := ParseCapacityPolicy("loose"); err == nil {
		t.Fatalf("expected error")
	}
}
