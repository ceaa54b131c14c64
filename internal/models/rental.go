package models

import "time"

// Approval values of a rental activity. A record is created pending, may
// move to approved exactly once, and leaves the table only by deletion
// (rejection, cancellation or expiry sweep).
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

type RentalActivity struct {
	ID        int       `json:"requestId"`
	Renter    string    `json:"renter"`
	Owner     string    `json:"owner"`
	PostID    int       `json:"postId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	TotalCost float64   `json:"totalCost"`
	Approval  string    `json:"approval"`
	CreatedAt time.Time `json:"createdAt"`
}

// RentalView is one entry of the enriched request/activity listings. The
// caller sees the counterpart (owner for the renter, renter for the owner)
// and a short post card.
type RentalView struct {
	RequestID int       `json:"requestId"`
	AmRenter  bool      `json:"amRenter"`
	Post      PostCard  `json:"post"`
	User      UserCard  `json:"user"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	TotalCost float64   `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
}
