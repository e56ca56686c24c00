package scheduling

import "time"

// Block is an admin-defined time window with a capacity, open for staff booking.
type Block struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Location  string      `json:"location"`
	StartsAt  time.Time   `json:"startsAt"`
	EndsAt    time.Time   `json:"endsAt"`
	Capacity  int         `json:"capacity"`
	Status    BlockStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Booking is a staff request to occupy one unit of a block's capacity.
// BlockID is a lookup key only; the block may be closed independently.
type Booking struct {
	ID            string        `json:"id"`
	BlockID       string        `json:"blockId"`
	EmployeeName  string        `json:"employeeName"`
	EmployeeEmail string        `json:"employeeEmail"`
	Status        BookingStatus `json:"status"`
	BookedAt      time.Time     `json:"bookedAt"`
}

type CreateBlockInput struct {
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Capacity int
	Notes    string
}

type BookingRequest struct {
	BlockID       string
	EmployeeName  string
	EmployeeEmail string
}
