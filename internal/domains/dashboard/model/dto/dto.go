package dto

// OwnerSummary aggregates an owner's venues, courts and bookings.
type OwnerSummary struct {
	Venues   map[string]int `json:"venues"`
	Courts   int            `json:"courts"`
	Bookings map[string]int `json:"bookings"`
	Revenue  int64          `json:"revenue"`
}
