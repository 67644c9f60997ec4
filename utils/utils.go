// Package utils holds the small set of password-hashing and JWT helpers the
// HTTP surface's bearer auth needs, adapted from the teacher's utils package.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/aoe4tourney/engine/models"
)

const BcryptCost = 14

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT issues a 24h bearer token carrying the user's id as the
// standard "sub" claim and is_staff for the admin console's own use
// (unused by this engine's handlers, which re-check ownership per request).
func GenerateJWT(user *models.User, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"is_staff": user.IsStaff,
		"exp":      now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
