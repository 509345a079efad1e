package entity

// Seat is the client's view of one seat. Reserved is authoritative only
// from the server; the storefront never flips it locally.
type Seat struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Reserved bool   `json:"reserved"`
	EventID  string `json:"event_id"`
}
