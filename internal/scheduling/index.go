package scheduling

import "strings"

// IndexByBlock groups bookings by block id, keeping the input order inside each group.
func IndexByBlock(bookings []Booking) map[string][]Booking {
	idx := make(map[string][]Booking)
	for _, b := range bookings {
		idx[b.BlockID] = append(idx[b.BlockID], b)
	}
	return idx
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ActiveBookingFor returns the pending or approved booking held under email, if any.
func ActiveBookingFor(bookings []Booking, email string) (Booking, bool) {
	want := NormalizeEmail(email)
	for _, b := range bookings {
		if b.Status.Active() && NormalizeEmail(b.EmployeeEmail) == want {
			return b, true
		}
	}
	return Booking{}, false
}

func ApprovedCount(bookings []Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status == BookingApproved {
			n++
		}
	}
	return n
}
