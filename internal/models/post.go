package models

import "time"

type Post struct {
	ID          int       `json:"postId"`
	UserHandle  string    `json:"userHandle"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Categories  []string  `json:"categories,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
	Location    Location  `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`

	// filled on the single-post read path only
	UserImage   string  `json:"userImage,omitempty"`
	UserContact Contact `json:"userContact,omitempty"`
}

// PostCard is the post fragment embedded in rental request listings.
type PostCard struct {
	PostID int    `json:"postId"`
	Image  string `json:"image,omitempty"`
	Title  string `json:"title,omitempty"`
}

// PostFilter mirrors the query params of the marketplace feed.
type PostFilter struct {
	Search     string
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	Address    string
	Postcode   string
	City       string
	State      string
	HideHandle string
}
