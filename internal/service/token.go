package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs HS256 bearer tokens for authenticated identities.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a token issuer with the given signing secret
// and token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueRole signs a token for an admin or coordinator identity.
func (t *TokenIssuer) IssueRole(username, role string) (string, error) {
	return t.sign(jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      t.now().Add(t.ttl).Unix(),
	})
}

// IssueStudent signs a token carrying the student's database ID.
func (t *TokenIssuer) IssueStudent(id uint, username string) (string, error) {
	return t.sign(jwt.MapClaims{
		"user_id":  float64(id),
		"username": username,
		"role":     RoleStudent,
		"exp":      t.now().Add(t.ttl).Unix(),
	})
}

func (t *TokenIssuer) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Roles recognized across the API.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleStudent     = "student"
)
