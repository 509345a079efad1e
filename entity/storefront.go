package entity

import "time"

// The storefront glue types below mirror the box-office backend's DTOs.
// They are passed through the proxy handlers mostly untouched.

type EventInfo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	TicketPrice int       `json:"ticket_price"`
}

type Review struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewComment struct {
	ID       string `json:"id"`
	ReviewID string `json:"review_id"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

type Profile struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

type ProfileUpdate struct {
	Nickname string `json:"nickname,omitempty"`
	Password string `json:"password,omitempty"`
}

// ReservationRecord is one confirmed reservation as listed on the
// customer's "my reservations" page.
type ReservationRecord struct {
	ReservationID string    `json:"reservation_id"`
	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	SeatCode      string    `json:"seat_code"`
	Amount        int       `json:"amount"`
	ReservedAt    time.Time `json:"reserved_at"`
}

// EventDraft is the admin form payload for creating an event.
type EventDraft struct {
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	TicketPrice int       `json:"ticket_price"`
	SeatCount   int       `json:"seat_count"`
}
