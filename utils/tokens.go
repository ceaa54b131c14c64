package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"rentloBack/internal/models"
)

const AccessTokenTTL = 20 * time.Hour

func NewAccessToken(signingKey string, userID int, handle string) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		Handle: handle,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(AccessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signingKey))
}

func NewRefreshToken() string {
	return uuid.New().String()
}
