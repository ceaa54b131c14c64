package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID        int       `json:"id"`
	Handle    string    `json:"handle"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"password,omitempty"`
	FullName  string    `json:"full_name"`
	ImageURL  string    `json:"image_url"`
	Bio       string    `json:"bio,omitempty"`
	PushToken string    `json:"push_token,omitempty"`
	Location  Location  `json:"location"`
	Contact   Contact   `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

type Location struct {
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
	State    string `json:"state"`
}

type Contact struct {
	Email           string `json:"email,omitempty"`
	PhoneNo         string `json:"phone_no,omitempty"`
	WhatsappEnabled bool   `json:"whatsapp_enabled,omitempty"`
	Facebook        string `json:"facebook,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
}

// UserCard is the short profile attached to rental requests and
// conversation groups.
type UserCard struct {
	Handle    string `json:"handle"`
	FullName  string `json:"fullName,omitempty"`
	ImageURI  string `json:"imageUri,omitempty"`
	PushToken string `json:"pushToken,omitempty"`
}

type Claims struct {
	UserID int    `json:"user_id"`
	Handle string `json:"handle"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	UserID       int       `json:"user_id"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
