// filepath: internal/services/auth/interfaces.go
package auth

import "time"

// TokenService defines the contract for JWT operations.
type TokenService interface {
	GenerateToken(subject string, ttl time.Duration) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (subject string, err error)
}
