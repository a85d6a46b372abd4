package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"refugio/config"

	"github.com/golang-jwt/jwt"
)

const adminSubject = "admin"

// AdminTokenPrefix keys the redis revocation cache for admin sessions.
const AdminTokenPrefix = "adminToken:"

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateAdminToken creates a signed JWT for the admin panel session. The
// token expires after the specified duration.
func GenerateAdminToken(email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   adminSubject,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string, used as the redis
// revocation-cache key so raw tokens never land in the store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateAdminToken parses a token string and verifies it carries the admin
// subject.
func ValidateAdminToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}
	if sub, _ := claims["sub"].(string); sub != adminSubject {
		return errors.New("token does not carry the admin subject")
	}
	return nil
}
