package display

import (
	"errors"
	"strconv"

	"shiftblocks/internal/scheduling"
)

func BlockStatusLabel(s scheduling.BlockStatus) string {
	switch s {
	case scheduling.BlockOpen:
		return "offen"
	case scheduling.BlockClosed:
		return "geschlossen"
	case scheduling.BlockCancelled:
		return "storniert"
	default:
		return string(s)
	}
}

func BookingStatusLabel(s scheduling.BookingStatus) string {
	switch s {
	case scheduling.BookingPending:
		return "wartet auf Freigabe"
	case scheduling.BookingApproved:
		return "bestätigt"
	case scheduling.BookingCancelled:
		return "storniert"
	default:
		return string(s)
	}
}

// RejectionReason is the text shown to staff when a request is refused.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, scheduling.ErrDuplicateBooking):
		return "Du hast für diesen Block bereits eine Buchung."
	case errors.Is(err, scheduling.ErrBlockFull):
		return "Dieser Block ist bereits voll."
	case errors.Is(err, scheduling.ErrBlockNotOpen):
		return "Dieser Block ist nicht mehr buchbar."
	case errors.Is(err, scheduling.ErrBlockNotFound):
		return "Block nicht gefunden."
	case errors.Is(err, scheduling.ErrBookingNotFound):
		return "Buchung nicht gefunden."
	case errors.Is(err, scheduling.ErrInvalidTransition):
		return "Dieser Statuswechsel ist nicht möglich."
	case errors.Is(err, scheduling.ErrValidation):
		return "Bitte alle Pflichtfelder ausfüllen."
	default:
		return "Unbekannter Fehler."
	}
}

// Occupancy renders "approved/capacity", e.g. "1/3".
func Occupancy(sum scheduling.BlockSummary) string {
	return strconv.Itoa(sum.Approved) + "/" + strconv.Itoa(sum.Block.Capacity)
}
