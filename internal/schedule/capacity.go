package schedule

// BookingDecision is the capacity gate's verdict for a new booking.
type BookingDecision string

const (
	DecisionConfirmed BookingDecision = "confirmed"
	DecisionWaitlist  BookingDecision = "waitlist"
	DecisionRejected  BookingDecision = "rejected"
)

// DecideStatus applies the capacity gate: an invalid occurrence is
// rejected outright; otherwise the booking is confirmed while seats
// remain and waitlisted once the class is full. Counting the existing
// bookings (confirmed, waitlist and pending_payment all occupy a seat;
// cancelled never does) and serializing the count-then-insert sequence
// are the caller's concern.
func DecideStatus(validOccurrence bool, currentConfirmedCount, capacity int) BookingDecision {
	if !validOccurrence {
		return DecisionRejected
	}
	if currentConfirmedCount < capacity {
		return DecisionConfirmed
	}
	return DecisionWaitlist
}
