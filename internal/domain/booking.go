package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingInProgress BookingStatus = "In Progress"
	BookingCompleted  BookingStatus = "Completed"
	BookingCancelled  BookingStatus = "Cancelled"
)

// bookingSuccessor is the only place the forward chain is defined.
var bookingSuccessor = map[BookingStatus]BookingStatus{
	BookingPending:    BookingConfirmed,
	BookingConfirmed:  BookingInProgress,
	BookingInProgress: BookingCompleted,
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// NextStatus returns the successor of s on the forward chain.
// ok is false for terminal or unknown statuses.
func NextStatus(s BookingStatus) (next BookingStatus, ok bool) {
	next, ok = bookingSuccessor[s]
	return next, ok
}

// CanCancel reports whether a booking in status s may be cancelled.
func CanCancel(s BookingStatus) bool {
	_, ok := bookingSuccessor[s]
	return ok
}

type Booking struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"size:120;not null"`
	Phone     string        `json:"phone" gorm:"size:32;not null"`
	Date      string        `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Time      string        `json:"time" gorm:"size:5;not null"`        // HH:MM
	ServiceID int64         `json:"service_id" gorm:"not null;index"`
	Status    BookingStatus `json:"status" gorm:"size:20;not null;index"`
	UserID    *int64        `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// Advance moves b one step forward. It returns false and leaves b unchanged
// when b is already terminal.
func (b *Booking) Advance() bool {
	next, ok := NextStatus(b.Status)
	if !ok {
		return false
	}
	b.Status = next
	return true
}

// Cancel moves b to Cancelled. It returns false and leaves b unchanged when
// b is Completed or already Cancelled.
func (b *Booking) Cancel() bool {
	if !CanCancel(b.Status) {
		return false
	}
	b.Status = BookingCancelled
	return true
}
